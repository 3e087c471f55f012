package forecast

import (
	"math"

	"github.com/quantlab/valuescreen/internal/contracts"
)

const cagrYears = 3

// FCFCAGR computes the compound annual growth rate of free cash flow
// over up to the three most recent fiscal years. Fails when fewer than
// two years are reported or either endpoint is non-positive: negative
// cash flows have no meaningful compound rate.
func FCFCAGR(cf *contracts.Statement) (float64, bool) {
	row, ok := cf.Series(contracts.LabelsFreeCashFlow...)
	if !ok {
		return 0, false
	}
	return endpointCAGR(row, 1)
}

// EPSCAGR computes the compound annual growth rate of earnings per
// share from the net income row and current share count.
func EPSCAGR(income *contracts.Statement, shares float64) (float64, bool) {
	if shares <= 0 {
		return 0, false
	}
	row, ok := income.Series(contracts.LabelsNetIncome...)
	if !ok {
		return 0, false
	}
	// A constant share count cancels out of the ratio, so the CAGR of
	// net income equals the CAGR of EPS.
	return endpointCAGR(row, shares)
}

func endpointCAGR(row []*float64, scale float64) (float64, bool) {
	n := len(row)
	if n > cagrYears {
		n = cagrYears
	}
	if n < 2 {
		return 0, false
	}

	newest, oldest := row[0], row[n-1]
	if newest == nil || oldest == nil {
		return 0, false
	}
	if *newest/scale <= 0 || *oldest/scale <= 0 {
		return 0, false
	}

	return math.Pow(*newest / *oldest, 1/float64(n-1)) - 1, true
}

// historicalGrowth picks the best available growth estimate: statement
// CAGR first, the provider's earnings-growth estimate second, a
// conservative default last.
func historicalGrowth(cagr float64, cagrOK bool, estimate *float64) float64 {
	if cagrOK {
		return cagr
	}
	if estimate != nil {
		return *estimate
	}
	return defaultGrowth
}
