package metrics

import (
	"math"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/quality"
)

const (
	// Tax rate assumed when the income statement carries no usable
	// pretax income to derive an effective rate from.
	defaultTaxRate = 0.25

	// ROIC is capped here: anything above is a data artifact
	// (tiny capital base), not a real return on capital.
	roicCap = 1.0

	fcfTrendYears = 3
)

// roic computes return on invested capital for the most recent fiscal
// year, flagging raw readings outside the sanity bounds.
func (e *Engine) roic(snap *contracts.FinancialSnapshot) *float64 {
	raw, ok := roicRaw(snap)
	if !ok {
		return nil
	}
	quality.Check(e.reporter, snap.Ticker, "roic", raw)
	return contracts.Float(math.Min(raw, roicCap))
}

// ROIC is the capped return on invested capital, for callers outside
// the engine that need the bare ratio.
func ROIC(snap *contracts.FinancialSnapshot) (float64, bool) {
	raw, ok := roicRaw(snap)
	if !ok {
		return 0, false
	}
	return math.Min(raw, roicCap), true
}

// roicRaw is NOPAT / invested capital, uncapped.
func roicRaw(snap *contracts.FinancialSnapshot) (float64, bool) {
	opInc, ok := snap.Income.Lookup(0, contracts.LabelsOperatingIncome...)
	if !ok {
		return 0, false
	}

	taxRate := defaultTaxRate
	if tax, ok := snap.Income.Lookup(0, contracts.LabelsTaxProvision...); ok {
		if pretax, ok := snap.Income.Lookup(0, contracts.LabelsPretaxIncome...); ok {
			taxRate = math.Abs(tax) / math.Abs(pretax)
		}
	}
	nopat := opInc * (1 - taxRate)

	capital, ok := investedCapital(snap.Balance)
	if !ok {
		return 0, false
	}

	return nopat / capital, true
}

// investedCapital is total debt + equity - cash; when that base is
// missing or non-positive it falls back to total assets - current
// liabilities. Both non-positive means ROIC cannot be computed.
func investedCapital(bal *contracts.Statement) (float64, bool) {
	debt, dok := bal.Lookup(0, contracts.LabelsTotalDebt...)
	equity, eok := bal.Lookup(0, contracts.LabelsTotalEquity...)
	if dok && eok {
		cash, _ := bal.Lookup(0, contracts.LabelsCash...)
		if capital := debt + equity - cash; capital > 0 {
			return capital, true
		}
	}

	assets, aok := bal.Lookup(0, contracts.LabelsTotalAssets...)
	liab, lok := bal.Lookup(0, contracts.LabelsCurrentLiab...)
	if aok && lok {
		if capital := assets - liab; capital > 0 {
			return capital, true
		}
	}

	return 0, false
}

// debtToEquity is total debt / stockholders equity for the most recent
// fiscal year.
func (e *Engine) debtToEquity(snap *contracts.FinancialSnapshot) *float64 {
	debt, ok := snap.Balance.Lookup(0, contracts.LabelsTotalDebt...)
	if !ok {
		return nil
	}
	equity, ok := snap.Balance.Lookup(0, contracts.LabelsTotalEquity...)
	if !ok {
		return nil
	}

	ratio := debt / equity
	quality.Check(e.reporter, snap.Ticker, "debt_to_equity", ratio)

	return contracts.Float(ratio)
}

// fcfTrend returns free cash flow for up to the three most recent
// fiscal years in chronological order. Years the source did not report
// stay in the trend with a nil value.
func (e *Engine) fcfTrend(snap *contracts.FinancialSnapshot) []contracts.FCFYear {
	row, ok := snap.CashFlow.Series(contracts.LabelsFreeCashFlow...)
	if !ok {
		return nil
	}

	n := snap.CashFlow.YearCount()
	if n > fcfTrendYears {
		n = fcfTrendYears
	}

	// Statement columns are newest first; the trend reads oldest first.
	trend := make([]contracts.FCFYear, 0, n)
	for i := n - 1; i >= 0; i-- {
		year := contracts.FCFYear{Year: snap.CashFlow.Years[i]}
		if i < len(row) {
			year.FCF = row[i]
		}
		trend = append(trend, year)
	}

	return trend
}

func distanceFromHigh(snap *contracts.FinancialSnapshot) *float64 {
	if snap.CurrentPrice == nil || snap.High52W == nil || *snap.High52W == 0 {
		return nil
	}
	return contracts.Float((*snap.CurrentPrice - *snap.High52W) / *snap.High52W * 100)
}

func distanceFromLow(snap *contracts.FinancialSnapshot) *float64 {
	if snap.CurrentPrice == nil || snap.Low52W == nil || *snap.Low52W == 0 {
		return nil
	}
	return contracts.Float((*snap.CurrentPrice - *snap.Low52W) / *snap.Low52W * 100)
}
