package contracts

// MarketParams holds the market-specific rates the forecasting engine
// discounts and benchmarks against. Modeled as an explicit value passed
// into the orchestrating functions, never ambient globals, so tests can
// run deterministically across markets.
type MarketParams struct {
	RiskFreeRate         float64 `yaml:"risk_free_rate" json:"risk_free_rate"`
	EquityRiskPremium    float64 `yaml:"equity_risk_premium" json:"equity_risk_premium"`
	TerminalGrowth       float64 `yaml:"terminal_growth" json:"terminal_growth"`
	ExpectedAnnualReturn float64 `yaml:"expected_annual_return" json:"expected_annual_return"`
}

// DefaultMarketParams returns the built-in table of per-market rates.
func DefaultMarketParams() map[string]MarketParams {
	return map[string]MarketParams{
		"SP500": {
			RiskFreeRate:         0.045,
			EquityRiskPremium:    0.055,
			TerminalGrowth:       0.025,
			ExpectedAnnualReturn: 0.10,
		},
		"NIFTY100": {
			RiskFreeRate:         0.070,
			EquityRiskPremium:    0.070,
			TerminalGrowth:       0.050,
			ExpectedAnnualReturn: 0.12,
		},
		"FTSE100": {
			RiskFreeRate:         0.042,
			EquityRiskPremium:    0.058,
			TerminalGrowth:       0.020,
			ExpectedAnnualReturn: 0.075,
		},
	}
}

// ParamsFor looks up a market's params, falling back to SP500 rates for
// unknown markets.
func ParamsFor(table map[string]MarketParams, market string) MarketParams {
	if p, ok := table[market]; ok {
		return p
	}
	return MarketParams{
		RiskFreeRate:         0.045,
		EquityRiskPremium:    0.055,
		TerminalGrowth:       0.025,
		ExpectedAnnualReturn: 0.10,
	}
}
