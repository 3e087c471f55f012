package screenconfig

import (
	"fmt"
	"math"
)

// ValidationError names the offending field. Any validation failure
// aborts the run.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks every constraint the engines rely on.
func Validate(cfg *Config) error {
	s := cfg.Screen
	if s.MinROIC < -0.50 || s.MinROIC > 1.0 {
		return ValidationError{"screen.min_roic", "must be in [-0.5, 1.0]"}
	}
	if s.MaxDebtToEquity <= 0 {
		return ValidationError{"screen.max_debt_to_equity", "must be > 0"}
	}
	if s.MinEarningsQuality < 0 || s.MinEarningsQuality > 100 {
		return ValidationError{"screen.min_earnings_quality", "must be in [0, 100]"}
	}
	if s.MaxDistanceFromLowPct < 0 {
		return ValidationError{"screen.max_distance_from_low_pct", "must be >= 0"}
	}
	if s.TopN < 0 {
		return ValidationError{"screen.top_n", "must be >= 0"}
	}

	r := cfg.Ranking
	if err := validateWeightPair(r.DiscountWeight, r.ROICWeight); err != nil {
		return ValidationError{"ranking.discount_weight/roic_weight", err.Error()}
	}
	if err := validateWeightPair(r.ValueWeight, r.MomentumWeight); err != nil {
		return ValidationError{"ranking.value_weight/momentum_weight", err.Error()}
	}

	f := cfg.Forecast
	if f.ReinvestmentRate < 0 || f.ReinvestmentRate > 1 {
		return ValidationError{"forecast.reinvestment_rate", "must be in [0, 1]"}
	}
	if f.GrowthCap <= 0 || f.GrowthCap > 1 {
		return ValidationError{"forecast.growth_cap", "must be in (0, 1]"}
	}
	if f.ProjectionYears < 1 {
		return ValidationError{"forecast.projection_years", "must be >= 1"}
	}

	for market, p := range cfg.Markets {
		if p.RiskFreeRate < 0 || p.RiskFreeRate > 0.5 {
			return ValidationError{"markets." + market + ".risk_free_rate", "must be in [0, 0.5]"}
		}
		if p.EquityRiskPremium < 0 || p.EquityRiskPremium > 0.5 {
			return ValidationError{"markets." + market + ".equity_risk_premium", "must be in [0, 0.5]"}
		}
		if p.TerminalGrowth < 0 || p.TerminalGrowth >= p.ExpectedAnnualReturn {
			return ValidationError{"markets." + market + ".terminal_growth", "must be in [0, expected_annual_return)"}
		}
	}

	return nil
}

func validateWeightPair(a, b float64) error {
	if a < 0 || b < 0 {
		return fmt.Errorf("weights must be >= 0")
	}
	if math.Abs(a+b-1.0) > 1e-6 {
		return fmt.Errorf("weights must sum to 1.0, got %.4f", a+b)
	}
	return nil
}
