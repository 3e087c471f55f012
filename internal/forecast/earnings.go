package forecast

import (
	"math"

	"github.com/quantlab/valuescreen/internal/contracts"
)

// earningsMultiple projects EPS forward at scenario growth and reprices
// it at a target P/E. Returns nil when earnings or a usable multiple
// are unavailable.
func (e *Engine) earningsMultiple(snap *contracts.FinancialSnapshot, params contracts.MarketParams) *contracts.ForecastModelResult {
	price, shares, ok := priceAndShares(snap)
	if !ok {
		return nil
	}

	eps, ok := currentEPS(snap, price, shares)
	if !ok {
		return nil
	}

	cagr, cagrOK := EPSCAGR(snap.Income, shares)
	growth := historicalGrowth(cagr, cagrOK, snap.EarningsGrowth)

	targetPE, ok := targetPE(snap, price, shares)
	if !ok {
		return nil
	}

	result := &contracts.ForecastModelResult{
		Model:      contracts.ModelEarningsMultiple,
		Scenarios:  make(map[contracts.Scenario]contracts.HorizonPrices, len(contracts.Scenarios)),
		GrowthRate: growth,
		TargetPE:   contracts.Float(targetPE),
	}

	for _, sc := range contracts.Scenarios {
		result.Scenarios[sc] = e.multiplePath(eps, growth, targetPE, sc, params)
	}

	return result
}

// multiplePath prices each horizon as projected EPS times the target
// multiple. Fractional horizons compound at the nearest whole
// projection year's scenario rate.
func (e *Engine) multiplePath(eps, growth, pe float64, sc contracts.Scenario, params contracts.MarketParams) contracts.HorizonPrices {
	prices := make(contracts.HorizonPrices, len(contracts.Horizons))
	for _, h := range contracts.Horizons {
		g := scenarioGrowth(growth, sc, horizonGrowthYear(h), e.cfg.Forecast.ProjectionYears, params.TerminalGrowth, e.cfg.Forecast.GrowthCap)
		projectedEPS := eps * math.Pow(1+g, contracts.HorizonYears[h])
		prices[h] = projectedEPS * pe
	}
	return prices
}

// currentEPS derives earnings per share from the trailing P/E when
// available, otherwise from the newest net income.
func currentEPS(snap *contracts.FinancialSnapshot, price, shares float64) (float64, bool) {
	if snap.TrailingPE != nil && *snap.TrailingPE > 0 {
		return price / *snap.TrailingPE, true
	}
	if ni, ok := snap.Income.Lookup(0, contracts.LabelsNetIncome...); ok && ni > 0 {
		return ni / shares, true
	}
	return 0, false
}

// targetPE picks the multiple to apply to projected earnings:
// normalized (price over 3-year average EPS) first, forward P/E second,
// trailing P/E last. Normalizing over several years damps a
// peak-earnings multiple.
func targetPE(snap *contracts.FinancialSnapshot, price, shares float64) (float64, bool) {
	if row, ok := snap.Income.Series(contracts.LabelsNetIncome...); ok {
		var sum float64
		var count int
		for i := 0; i < len(row) && i < 3; i++ {
			if row[i] != nil && *row[i] > 0 {
				sum += *row[i]
				count++
			}
		}
		if count >= 2 {
			avgEPS := sum / float64(count) / shares
			if avgEPS > 0 {
				return price / avgEPS, true
			}
		}
	}

	if snap.ForwardPE != nil && *snap.ForwardPE > 0 {
		return *snap.ForwardPE, true
	}
	if snap.TrailingPE != nil && *snap.TrailingPE > 0 {
		return *snap.TrailingPE, true
	}
	return 0, false
}
