package forecast

import (
	"math"

	"github.com/quantlab/valuescreen/internal/contracts"
)

const (
	defaultBeta       = 1.0
	defaultCostOfDebt = 0.05
	defaultTaxRate    = 0.25
)

// betaOrDefault returns the snapshot beta, falling back to 1.0 when it
// is missing or non-positive.
func betaOrDefault(snap *contracts.FinancialSnapshot) float64 {
	if snap.Beta == nil || *snap.Beta <= 0 {
		return defaultBeta
	}
	return *snap.Beta
}

// WACC estimates the weighted average cost of capital via CAPM. When
// the debt side cannot be valued it degrades to the cost of equity
// alone rather than failing.
func WACC(snap *contracts.FinancialSnapshot, params contracts.MarketParams) float64 {
	costOfEquity := params.RiskFreeRate + betaOrDefault(snap)*params.EquityRiskPremium

	if snap.MarketCap == nil {
		return costOfEquity
	}
	totalDebt, ok := snap.Balance.Lookup(0, contracts.LabelsTotalDebt...)
	if !ok || totalDebt <= 0 {
		return costOfEquity
	}

	costOfDebt := defaultCostOfDebt
	if interest, ok := snap.Income.Lookup(0, contracts.LabelsInterestExpense...); ok {
		costOfDebt = math.Abs(interest) / totalDebt
	}

	taxRate := defaultTaxRate
	if tax, ok := snap.Income.Lookup(0, contracts.LabelsTaxProvision...); ok {
		if pretax, ok := snap.Income.Lookup(0, contracts.LabelsPretaxIncome...); ok && pretax > 0 {
			taxRate = math.Abs(tax) / pretax
		}
	}

	equityValue := *snap.MarketCap
	totalValue := equityValue + totalDebt
	if totalValue <= 0 {
		return costOfEquity
	}

	return (equityValue/totalValue)*costOfEquity +
		(totalDebt/totalValue)*costOfDebt*(1-taxRate)
}
