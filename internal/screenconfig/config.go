// Package screenconfig is the single source of truth for screening and
// forecasting thresholds. Everything tunable lives in one YAML file so
// a run is fully described by its config hash.
package screenconfig

import "github.com/quantlab/valuescreen/internal/contracts"

// Config is the full strategy file.
type Config struct {
	Screen   ScreenConfig                      `yaml:"screen" json:"screen"`
	Ranking  RankingConfig                     `yaml:"ranking" json:"ranking"`
	Forecast ForecastConfig                    `yaml:"forecast" json:"forecast"`
	Markets  map[string]contracts.MarketParams `yaml:"markets" json:"markets"`
}

// ScreenConfig holds the hard pass/fail gates of the screening
// pipeline.
type ScreenConfig struct {
	MinROIC               float64 `yaml:"min_roic" json:"min_roic"`
	MaxDebtToEquity       float64 `yaml:"max_debt_to_equity" json:"max_debt_to_equity"`
	RequireFCFPositive    bool    `yaml:"require_fcf_positive" json:"require_fcf_positive"`
	MinEarningsQuality    float64 `yaml:"min_earnings_quality" json:"min_earnings_quality"`
	MaxDistanceFromLowPct float64 `yaml:"max_distance_from_low_pct" json:"max_distance_from_low_pct"`
	TopN                  int     `yaml:"top_n" json:"top_n"` // 0 keeps every survivor
}

// RankingConfig weights the composite scores.
type RankingConfig struct {
	Hybrid         bool    `yaml:"hybrid" json:"hybrid"`
	DiscountWeight float64 `yaml:"discount_weight" json:"discount_weight"`
	ROICWeight     float64 `yaml:"roic_weight" json:"roic_weight"`
	ValueWeight    float64 `yaml:"value_weight" json:"value_weight"`
	MomentumWeight float64 `yaml:"momentum_weight" json:"momentum_weight"`
}

// ForecastConfig holds the model knobs shared across markets.
type ForecastConfig struct {
	ReinvestmentRate float64 `yaml:"reinvestment_rate" json:"reinvestment_rate"`
	GrowthCap        float64 `yaml:"growth_cap" json:"growth_cap"`
	ProjectionYears  int     `yaml:"projection_years" json:"projection_years"`
}

// Default returns the built-in strategy, used when no file is given.
func Default() *Config {
	return &Config{
		Screen: ScreenConfig{
			MinROIC:               0.15,
			MaxDebtToEquity:       0.8,
			RequireFCFPositive:    true,
			MinEarningsQuality:    0,
			MaxDistanceFromLowPct: 10,
			TopN:                  0,
		},
		Ranking: RankingConfig{
			Hybrid:         false,
			DiscountWeight: 0.4,
			ROICWeight:     0.6,
			ValueWeight:    0.7,
			MomentumWeight: 0.3,
		},
		Forecast: ForecastConfig{
			ReinvestmentRate: 0.60,
			GrowthCap:        0.30,
			ProjectionYears:  5,
		},
		Markets: contracts.DefaultMarketParams(),
	}
}
