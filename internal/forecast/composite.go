package forecast

import (
	"fmt"
	"math"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/quality"
	"github.com/quantlab/valuescreen/internal/screenconfig"
	"github.com/quantlab/valuescreen/pkg/logger"
)

// Engine runs the valuation models and assembles composite forecasts.
type Engine struct {
	logger   *logger.Logger
	reporter quality.Reporter
	cfg      *screenconfig.Config
}

// NewEngine creates a forecasting engine. reporter may be nil.
func NewEngine(log *logger.Logger, reporter quality.Reporter, cfg *screenconfig.Config) *Engine {
	return &Engine{
		logger:   log.WithComponent("forecast"),
		reporter: reporter,
		cfg:      cfg,
	}
}

// Composite runs all three models and averages whichever succeeded,
// per scenario and horizon independently. Fails when the snapshot is
// structurally invalid, has no price, or no model can produce a
// projection.
func (e *Engine) Composite(snap *contracts.FinancialSnapshot, bars []contracts.Bar) (*contracts.CompositeForecast, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	if snap.CurrentPrice == nil || *snap.CurrentPrice <= 0 {
		return nil, fmt.Errorf("%s: no current price", snap.Ticker)
	}
	price := *snap.CurrentPrice

	params := contracts.ParamsFor(e.cfg.Markets, snap.Market)

	var models []contracts.ForecastModelResult
	for _, m := range []*contracts.ForecastModelResult{
		e.dcf(snap, params),
		e.earningsMultiple(snap, params),
		e.roicGrowth(snap, params),
	} {
		if m != nil {
			models = append(models, *m)
		}
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("%s: no valuation model could run", snap.Ticker)
	}

	composite := make(map[contracts.Scenario]contracts.HorizonPrices, len(contracts.Scenarios))
	for _, sc := range contracts.Scenarios {
		prices := make(contracts.HorizonPrices, len(contracts.Horizons))
		for _, h := range contracts.Horizons {
			var sum float64
			var count int
			for _, m := range models {
				if p, ok := m.Scenarios[sc][h]; ok {
					sum += p
					count++
				}
			}
			if count > 0 {
				prices[h] = sum / float64(count)
			} else {
				prices[h] = price
			}
		}
		composite[sc] = prices
	}

	benchmark := make(contracts.HorizonPrices, len(contracts.Horizons))
	for _, h := range contracts.Horizons {
		benchmark[h] = price * math.Pow(1+params.ExpectedAnnualReturn, contracts.HorizonYears[h])
	}

	base1Y := composite[contracts.ScenarioBase][contracts.Horizon1Y]
	projectedReturn := (base1Y - price) / price

	forecast := &contracts.CompositeForecast{
		Ticker:          snap.Ticker,
		Name:            snap.Name,
		Market:          snap.Market,
		CurrentPrice:    price,
		Models:          models,
		ModelsUsed:      len(models),
		Composite:       composite,
		MarketBenchmark: benchmark,
		Risk:            Risk(snap, bars, params.RiskFreeRate, contracts.Float(projectedReturn)),
		Alpha1YPct:      (projectedReturn - params.ExpectedAnnualReturn) * 100,
	}

	if dcf, ok := forecast.Model(contracts.ModelDCF); ok {
		forecast.DCFIntrinsicValue = dcf.IntrinsicValue
		forecast.MarginOfSafetyPct = dcf.MarginOfSafetyPct
	}

	e.logger.WithFields(map[string]interface{}{
		"ticker":      snap.Ticker,
		"market":      snap.Market,
		"models_used": forecast.ModelsUsed,
	}).Debug("Composite forecast built")

	return forecast, nil
}

// priceAndShares is the shared precondition of all three models.
func priceAndShares(snap *contracts.FinancialSnapshot) (price, shares float64, ok bool) {
	if snap.CurrentPrice == nil || *snap.CurrentPrice <= 0 {
		return 0, 0, false
	}
	if snap.SharesOutstanding == nil || *snap.SharesOutstanding <= 0 {
		return 0, 0, false
	}
	return *snap.CurrentPrice, *snap.SharesOutstanding, true
}
