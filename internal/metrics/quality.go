package metrics

import (
	"github.com/quantlab/valuescreen/internal/contracts"
)

// Earnings quality sub-signal weights. The composite renormalizes over
// whichever sub-signals are computable.
const (
	weightAccrual    = 0.40
	weightFCFOverNI  = 0.35
	weightDivergence = 0.25
)

// earningsQuality scores how well reported earnings are backed by cash,
// 0-100. Absent only when none of the three sub-signals is computable.
func (e *Engine) earningsQuality(snap *contracts.FinancialSnapshot) *float64 {
	score, ok := contracts.WeightedAverage([]contracts.WeightedValue{
		{Weight: weightAccrual, Value: accrualScore(snap)},
		{Weight: weightFCFOverNI, Value: fcfOverNIScore(snap)},
		{Weight: weightDivergence, Value: divergenceScore(snap)},
	})
	if !ok {
		return nil
	}
	return contracts.Float(score)
}

// accrualScore penalizes earnings that run ahead of operating cash.
// Accrual ratio (net income - operating cash flow) / total assets maps
// linearly from 100 at -10% or lower to 0 at +20% or higher.
func accrualScore(snap *contracts.FinancialSnapshot) *float64 {
	ni, ok := snap.Income.Lookup(0, contracts.LabelsNetIncome...)
	if !ok {
		return nil
	}
	ocf, ok := snap.CashFlow.Lookup(0, contracts.LabelsOperatingCF...)
	if !ok {
		return nil
	}
	assets, ok := snap.Balance.Lookup(0, contracts.LabelsTotalAssets...)
	if !ok || assets <= 0 {
		return nil
	}

	accrual := (ni - ocf) / assets
	return contracts.Float(scaleLinear(accrual, 0.20, -0.10))
}

// fcfOverNIScore rewards free cash flow conversion: FCF / net income
// maps from 0 at 0.5 or lower to 100 at 1.2 or higher. Only defined for
// positive net income.
func fcfOverNIScore(snap *contracts.FinancialSnapshot) *float64 {
	ni, ok := snap.Income.Lookup(0, contracts.LabelsNetIncome...)
	if !ok || ni <= 0 {
		return nil
	}

	fcf, ok := snap.CashFlow.Lookup(0, contracts.LabelsFreeCashFlow...)
	if !ok {
		if snap.FreeCashFlowTTM == nil {
			return nil
		}
		fcf = *snap.FreeCashFlowTTM
	}

	return contracts.Float(scaleLinear(fcf/ni, 0.50, 1.20))
}

// divergenceScore compares revenue growth against receivables growth
// year over year. Receivables growing much faster than revenue is a
// channel-stuffing signal: divergence (revenue growth - receivables
// growth) maps from 0 at -20% to 100 at +10%.
func divergenceScore(snap *contracts.FinancialSnapshot) *float64 {
	revNow, ok := snap.Income.Lookup(0, contracts.LabelsTotalRevenue...)
	if !ok {
		return nil
	}
	revPrev, ok := snap.Income.Lookup(1, contracts.LabelsTotalRevenue...)
	if !ok {
		return nil
	}

	recNow, ok := snap.Balance.Lookup(0, contracts.LabelsReceivables...)
	if !ok {
		return nil
	}
	recPrev, ok := snap.Balance.Lookup(1, contracts.LabelsReceivables...)
	if !ok || recPrev <= 0 {
		return nil
	}

	revGrowth := (revNow - revPrev) / abs(revPrev)
	recGrowth := (recNow - recPrev) / recPrev

	return contracts.Float(scaleLinear(revGrowth-recGrowth, -0.20, 0.10))
}

// scaleLinear maps v onto 0-100 between the value scoring zero and the
// value scoring one hundred, clamping outside the band. The zero end
// may sit on either side of the hundred end.
func scaleLinear(v, atZero, atHundred float64) float64 {
	score := (v - atZero) / (atHundred - atZero) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
