package forecast

import (
	"math"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/quality"
)

// dcfConvergence is the fraction of the gap between current price and
// intrinsic value assumed to close by each horizon. Markets take years
// to recognize value; only the 5-year horizon prices in full.
var dcfConvergence = map[contracts.Horizon]float64{
	contracts.Horizon6M: 0.10,
	contracts.Horizon1Y: 0.20,
	contracts.Horizon2Y: 0.40,
	contracts.Horizon5Y: 1.00,
}

// dcf projects free cash flow forward with scenario growth, discounts
// at WACC and converges the price toward per-share intrinsic value.
// Returns nil when the required inputs are missing or the discount rate
// does not exceed terminal growth.
func (e *Engine) dcf(snap *contracts.FinancialSnapshot, params contracts.MarketParams) *contracts.ForecastModelResult {
	price, shares, ok := priceAndShares(snap)
	if !ok {
		return nil
	}

	ttmFCF, ok := ttmFreeCashFlow(snap)
	if !ok {
		return nil
	}

	cagr, cagrOK := FCFCAGR(snap.CashFlow)
	if cagrOK {
		quality.Check(e.reporter, snap.Ticker, "fcf_cagr", cagr)
	}
	growth := historicalGrowth(cagr, cagrOK, snap.EarningsGrowth)

	wacc := WACC(snap, params)
	if wacc <= params.TerminalGrowth {
		return nil
	}

	result := &contracts.ForecastModelResult{
		Model:        contracts.ModelDCF,
		Scenarios:    make(map[contracts.Scenario]contracts.HorizonPrices, len(contracts.Scenarios)),
		GrowthRate:   growth,
		DiscountRate: contracts.Float(wacc),
	}

	for _, sc := range contracts.Scenarios {
		intrinsic, terminal := e.dcfIntrinsic(snap, sc, ttmFCF, growth, wacc, shares, params)

		if sc == contracts.ScenarioBase {
			if intrinsic <= 0 {
				return nil
			}
			result.TerminalValue = contracts.Float(terminal)
			result.IntrinsicValue = contracts.Float(intrinsic)
			result.MarginOfSafetyPct = contracts.Float((intrinsic - price) / intrinsic * 100)
		}

		prices := make(contracts.HorizonPrices, len(dcfConvergence))
		for h, conv := range dcfConvergence {
			prices[h] = price + (intrinsic-price)*conv
		}
		result.Scenarios[sc] = prices
	}

	return result
}

func (e *Engine) dcfIntrinsic(snap *contracts.FinancialSnapshot, sc contracts.Scenario, ttmFCF, growth, wacc, shares float64, params contracts.MarketParams) (intrinsic, terminal float64) {
	years := e.cfg.Forecast.ProjectionYears
	maxGrowth := e.cfg.Forecast.GrowthCap

	fcf := ttmFCF
	var pvFCF float64
	for year := 1; year <= years; year++ {
		g := scenarioGrowth(growth, sc, year, years, params.TerminalGrowth, maxGrowth)
		fcf *= 1 + g
		pvFCF += fcf / math.Pow(1+wacc, float64(year))
	}

	terminal = fcf * (1 + params.TerminalGrowth) / (wacc - params.TerminalGrowth)
	if terminal < 0 {
		terminal = 0
	}
	pvTerminal := terminal / math.Pow(1+wacc, float64(years))

	enterpriseValue := pvFCF + pvTerminal

	var netDebt float64
	if debt, ok := snap.Balance.Lookup(0, contracts.LabelsTotalDebt...); ok {
		cash, _ := snap.Balance.Lookup(0, contracts.LabelsCash...)
		netDebt = debt - cash
	}

	equityValue := enterpriseValue - netDebt
	if equityValue <= 0 {
		// Net debt swallowing the whole enterprise value is almost
		// always a statement artifact; value the enterprise instead.
		equityValue = enterpriseValue
	}

	return equityValue / shares, terminal
}

// ttmFreeCashFlow prefers the provider's trailing figure, falling back
// to the newest statement year. Requires a positive base.
func ttmFreeCashFlow(snap *contracts.FinancialSnapshot) (float64, bool) {
	if snap.FreeCashFlowTTM != nil && *snap.FreeCashFlowTTM > 0 {
		return *snap.FreeCashFlowTTM, true
	}
	if fcf, ok := snap.CashFlow.Lookup(0, contracts.LabelsFreeCashFlow...); ok && fcf > 0 {
		return fcf, true
	}
	return 0, false
}
