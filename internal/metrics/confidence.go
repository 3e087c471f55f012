package metrics

import "github.com/quantlab/valuescreen/internal/contracts"

// Classify labels the snapshot's data completeness.
//
//	High:   all three statements present with 3+ fiscal years, beta known
//	Medium: all three statements present, but shallow history or no beta
//	Low:    any statement missing entirely
func Classify(snap *contracts.FinancialSnapshot) contracts.Confidence {
	if snap.Income.Empty() || snap.Balance.Empty() || snap.CashFlow.Empty() {
		return contracts.ConfidenceLow
	}

	deep := snap.Income.YearCount() >= 3 &&
		snap.Balance.YearCount() >= 3 &&
		snap.CashFlow.YearCount() >= 3

	if deep && snap.Beta != nil {
		return contracts.ConfidenceHigh
	}
	return contracts.ConfidenceMedium
}
