package forecast

import (
	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/metrics"
)

// roicGrowth projects earnings at the sustainable growth rate implied
// by capital returns: reinvestment rate times ROIC. Returns nil when
// ROIC is non-positive or earnings cannot be established.
func (e *Engine) roicGrowth(snap *contracts.FinancialSnapshot, params contracts.MarketParams) *contracts.ForecastModelResult {
	price, shares, ok := priceAndShares(snap)
	if !ok {
		return nil
	}

	roic, ok := metrics.ROIC(snap)
	if !ok || roic <= 0 {
		return nil
	}

	reinvestment := e.cfg.Forecast.ReinvestmentRate
	if snap.PayoutRatio != nil && *snap.PayoutRatio >= 0 && *snap.PayoutRatio <= 1 {
		reinvestment = 1 - *snap.PayoutRatio
	}
	sustainable := reinvestment * roic

	var eps, pe float64
	switch {
	case snap.TrailingPE != nil && *snap.TrailingPE > 0:
		pe = *snap.TrailingPE
		eps = price / pe
	default:
		ni, ok := snap.Income.Lookup(0, contracts.LabelsNetIncome...)
		if !ok || ni <= 0 {
			return nil
		}
		eps = ni / shares
		pe = price / eps
	}
	if eps <= 0 || pe <= 0 {
		return nil
	}

	result := &contracts.ForecastModelResult{
		Model:             contracts.ModelROICGrowth,
		Scenarios:         make(map[contracts.Scenario]contracts.HorizonPrices, len(contracts.Scenarios)),
		GrowthRate:        sustainable,
		SustainableGrowth: contracts.Float(sustainable),
	}

	for _, sc := range contracts.Scenarios {
		result.Scenarios[sc] = e.multiplePath(eps, sustainable, pe, sc, params)
	}

	return result
}
