package contracts

// Scenario is a growth-path assumption shared by all valuation models.
type Scenario string

const (
	ScenarioBull Scenario = "bull"
	ScenarioBase Scenario = "base"
	ScenarioBear Scenario = "bear"
)

// Scenarios lists all scenarios in display order.
var Scenarios = []Scenario{ScenarioBull, ScenarioBase, ScenarioBear}

// Horizon is a fixed projection horizon.
type Horizon string

const (
	Horizon6M Horizon = "6m"
	Horizon1Y Horizon = "1y"
	Horizon2Y Horizon = "2y"
	Horizon5Y Horizon = "5y"
)

// Horizons lists all horizons, nearest first.
var Horizons = []Horizon{Horizon6M, Horizon1Y, Horizon2Y, Horizon5Y}

// HorizonYears maps each horizon to its length in years.
var HorizonYears = map[Horizon]float64{
	Horizon6M: 0.5,
	Horizon1Y: 1.0,
	Horizon2Y: 2.0,
	Horizon5Y: 5.0,
}

// HorizonPrices maps horizons to projected prices.
type HorizonPrices map[Horizon]float64

// ModelKind identifies a valuation model.
type ModelKind string

const (
	ModelDCF              ModelKind = "dcf"
	ModelEarningsMultiple ModelKind = "earnings_multiple"
	ModelROICGrowth       ModelKind = "roic_growth"
)

// ForecastModelResult is one model's projection across scenarios and
// horizons, with the key assumptions behind it. A model that lacks its
// required inputs produces no result at all rather than a partial one.
type ForecastModelResult struct {
	Model     ModelKind                  `json:"model"`
	Scenarios map[Scenario]HorizonPrices `json:"scenarios"`

	// Assumptions. Only those the model uses are set.
	GrowthRate        float64  `json:"growth_rate"`                   // historical growth input
	DiscountRate      *float64 `json:"discount_rate,omitempty"`      // DCF: WACC
	TerminalValue     *float64 `json:"terminal_value,omitempty"`     // DCF
	IntrinsicValue    *float64 `json:"intrinsic_value,omitempty"`    // DCF: base-case value per share
	MarginOfSafetyPct *float64 `json:"margin_of_safety,omitempty"`   // DCF
	TargetPE          *float64 `json:"target_pe,omitempty"`          // multiple-based models
	SustainableGrowth *float64 `json:"sustainable_growth,omitempty"` // ROIC growth model
}

// RiskMetrics describes per-company risk derived from the trailing-year
// price series. Beta falls back to 1.0 when unavailable; the other
// fields are absent when the series is too short.
type RiskMetrics struct {
	Beta             float64  `json:"beta"`
	AnnualVolatility *float64 `json:"annual_volatility"`
	MaxDrawdownPct   *float64 `json:"max_drawdown_pct"`
	SharpeRatio      *float64 `json:"sharpe_ratio"`
}

// CompositeForecast averages whichever models succeeded, per horizon and
// scenario independently. It exists iff at least one model succeeded.
type CompositeForecast struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name"`
	Market       string  `json:"market"`
	CurrentPrice float64 `json:"current_price"`

	Models     []ForecastModelResult      `json:"models"` // successful models only
	ModelsUsed int                        `json:"models_used"`
	Composite  map[Scenario]HorizonPrices `json:"composite"`

	// Market's expected price trajectory at each horizon, from the
	// listing market's long-run annual return.
	MarketBenchmark HorizonPrices `json:"market_benchmark"`

	Risk RiskMetrics `json:"risk"`

	// Base-case 1-year return minus the market's expected annual
	// return, in percentage points.
	Alpha1YPct float64 `json:"alpha_1y_pct"`

	DCFIntrinsicValue *float64 `json:"dcf_intrinsic_value"`
	MarginOfSafetyPct *float64 `json:"margin_of_safety_pct"`
}

// Model returns the result for the given model kind, if it succeeded.
func (c *CompositeForecast) Model(kind ModelKind) (*ForecastModelResult, bool) {
	for i := range c.Models {
		if c.Models[i].Model == kind {
			return &c.Models[i], true
		}
	}
	return nil, false
}
