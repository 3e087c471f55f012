package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/screenconfig"
	"github.com/quantlab/valuescreen/pkg/logger"
)

func f(v float64) *float64 { return contracts.Float(v) }

// forecastSnapshot is a company every model can value: price 100,
// 10 shares, trailing P/E 20, rising FCF and earnings.
func forecastSnapshot() *contracts.FinancialSnapshot {
	return &contracts.FinancialSnapshot{
		Ticker:            "ACME",
		Name:              "Acme Corp",
		Market:            "SP500",
		CurrentPrice:      f(100),
		MarketCap:         f(1000),
		Beta:              f(1.0),
		TrailingPE:        f(20),
		SharesOutstanding: f(10),
		FreeCashFlowTTM:   f(110),
		Income: &contracts.Statement{
			Years: []string{"2025", "2024", "2023"},
			Items: map[string][]*float64{
				"Operating Income": {f(200), f(180), f(160)},
				"Tax Provision":    {f(25), f(24), f(22)},
				"Pretax Income":    {f(100), f(96), f(90)},
				"Net Income":       {f(150), f(140), f(120)},
				"Interest Expense": {f(10), f(10), f(11)},
			},
		},
		Balance: &contracts.Statement{
			Years: []string{"2025", "2024", "2023"},
			Items: map[string][]*float64{
				"Total Debt":          {f(200), f(210), f(220)},
				"Stockholders Equity": {f(800), f(760), f(730)},
			},
		},
		CashFlow: &contracts.Statement{
			Years: []string{"2025", "2024", "2023"},
			Items: map[string][]*float64{
				"Free Cash Flow": {f(110), f(100), f(90)},
			},
		},
	}
}

func testEngine() *Engine {
	return NewEngine(logger.Nop(), nil, screenconfig.Default())
}

func sp500() contracts.MarketParams {
	return contracts.DefaultMarketParams()["SP500"]
}

func assertScenarioOrdering(t *testing.T, m *contracts.ForecastModelResult) {
	t.Helper()
	for _, h := range contracts.Horizons {
		bull := m.Scenarios[contracts.ScenarioBull][h]
		base := m.Scenarios[contracts.ScenarioBase][h]
		bear := m.Scenarios[contracts.ScenarioBear][h]
		assert.GreaterOrEqual(t, bull, base, "horizon %s", h)
		assert.GreaterOrEqual(t, base, bear, "horizon %s", h)
	}
}

func TestDCF(t *testing.T) {
	e := testEngine()
	m := e.dcf(forecastSnapshot(), sp500())
	require.NotNil(t, m)

	assert.Equal(t, contracts.ModelDCF, m.Model)
	require.NotNil(t, m.DiscountRate)
	assert.InDelta(t, 0.089583, *m.DiscountRate, 1e-4)

	require.NotNil(t, m.IntrinsicValue)
	iv := *m.IntrinsicValue
	assert.Greater(t, iv, 0.0)

	// margin of safety is defined against intrinsic value
	require.NotNil(t, m.MarginOfSafetyPct)
	assert.InDelta(t, (iv-100)/iv*100, *m.MarginOfSafetyPct, 1e-9)

	// horizon prices converge toward intrinsic value: 10% at 6 months,
	// fully priced in at 5 years
	base := m.Scenarios[contracts.ScenarioBase]
	assert.InDelta(t, 100+(iv-100)*0.10, base[contracts.Horizon6M], 1e-9)
	assert.InDelta(t, iv, base[contracts.Horizon5Y], 1e-9)

	assertScenarioOrdering(t, m)
}

func TestDCF_FailsWhenWACCBelowTerminalGrowth(t *testing.T) {
	e := testEngine()
	snap := forecastSnapshot()
	snap.MarketCap = nil // wacc degrades to cost of equity 0.10

	params := sp500()
	params.TerminalGrowth = 0.12

	assert.Nil(t, e.dcf(snap, params))
}

func TestDCF_FailsWithoutFreeCashFlow(t *testing.T) {
	e := testEngine()
	snap := forecastSnapshot()
	snap.FreeCashFlowTTM = nil
	snap.CashFlow = nil

	assert.Nil(t, e.dcf(snap, sp500()))
}

func TestEarningsMultiple(t *testing.T) {
	e := testEngine()
	m := e.earningsMultiple(forecastSnapshot(), sp500())
	require.NotNil(t, m)

	// normalized P/E: price over 3-year average EPS,
	// 100 / ((410/3)/10) = 7.3171
	require.NotNil(t, m.TargetPE)
	assert.InDelta(t, 7.3171, *m.TargetPE, 1e-3)

	// 5-year base growth is fully decayed to terminal: price is
	// eps * (1+terminal)^5 * target P/E with eps = 100/20 = 5
	want := 5 * math.Pow(1.025, 5) * *m.TargetPE
	assert.InDelta(t, want, m.Scenarios[contracts.ScenarioBase][contracts.Horizon5Y], 1e-6)

	assertScenarioOrdering(t, m)
}

func TestEarningsMultiple_TargetPEFallbacks(t *testing.T) {
	e := testEngine()

	snap := forecastSnapshot()
	delete(snap.Income.Items, "Net Income")
	snap.ForwardPE = f(18)
	m := e.earningsMultiple(snap, sp500())
	require.NotNil(t, m)
	assert.Equal(t, 18.0, *m.TargetPE)

	snap.ForwardPE = nil
	m = e.earningsMultiple(snap, sp500())
	require.NotNil(t, m)
	assert.Equal(t, 20.0, *m.TargetPE)

	snap.TrailingPE = nil
	assert.Nil(t, e.earningsMultiple(snap, sp500()))
}

func TestROICGrowth(t *testing.T) {
	e := testEngine()
	m := e.roicGrowth(forecastSnapshot(), sp500())
	require.NotNil(t, m)

	// roic = 150/1000 = 0.15; default reinvestment 0.60
	require.NotNil(t, m.SustainableGrowth)
	assert.InDelta(t, 0.09, *m.SustainableGrowth, 1e-9)

	assertScenarioOrdering(t, m)
}

func TestROICGrowth_PayoutRatioSetsReinvestment(t *testing.T) {
	e := testEngine()
	snap := forecastSnapshot()
	snap.PayoutRatio = f(0.2)

	m := e.roicGrowth(snap, sp500())
	require.NotNil(t, m)
	assert.InDelta(t, 0.8*0.15, *m.SustainableGrowth, 1e-9)
}

func TestROICGrowth_FailsOnNonPositiveROIC(t *testing.T) {
	e := testEngine()
	snap := forecastSnapshot()
	snap.Income.Items["Operating Income"][0] = f(-50)

	assert.Nil(t, e.roicGrowth(snap, sp500()))
}

func TestRisk(t *testing.T) {
	snap := forecastSnapshot()

	bars := make([]contracts.Bar, 0, 20)
	for i := 0; i < 18; i++ {
		bars = append(bars, contracts.Bar{Close: 100})
	}
	bars = append(bars, contracts.Bar{Close: 110}, contracts.Bar{Close: 88})

	risk := Risk(snap, bars, 0.045, f(0.20))

	assert.Equal(t, 1.0, risk.Beta)
	require.NotNil(t, risk.MaxDrawdownPct)
	assert.InDelta(t, -20.0, *risk.MaxDrawdownPct, 1e-9)
	require.NotNil(t, risk.AnnualVolatility)
	assert.Greater(t, *risk.AnnualVolatility, 0.0)
	require.NotNil(t, risk.SharpeRatio)
	assert.InDelta(t, (0.20-0.045) / *risk.AnnualVolatility, *risk.SharpeRatio, 1e-9)
}

func TestRisk_ShortSeries(t *testing.T) {
	snap := forecastSnapshot()
	snap.Beta = nil

	risk := Risk(snap, make([]contracts.Bar, 5), 0.045, nil)

	assert.Equal(t, 1.0, risk.Beta)
	assert.Nil(t, risk.AnnualVolatility)
	assert.Nil(t, risk.MaxDrawdownPct)
	assert.Nil(t, risk.SharpeRatio)
}

func TestComposite(t *testing.T) {
	e := testEngine()
	fc, err := e.Composite(forecastSnapshot(), nil)
	require.NoError(t, err)

	assert.Equal(t, "ACME", fc.Ticker)
	assert.Equal(t, 3, fc.ModelsUsed)
	require.Len(t, fc.Models, 3)

	// composite is the mean of the three models, per cell
	for _, sc := range contracts.Scenarios {
		for _, h := range contracts.Horizons {
			var sum float64
			for _, m := range fc.Models {
				sum += m.Scenarios[sc][h]
			}
			assert.InDelta(t, sum/3, fc.Composite[sc][h], 1e-9, "%s/%s", sc, h)
		}
	}

	// benchmark compounds the market's long-run return
	assert.InDelta(t, 100*1.10, fc.MarketBenchmark[contracts.Horizon1Y], 1e-9)
	assert.InDelta(t, 100*math.Pow(1.10, 5), fc.MarketBenchmark[contracts.Horizon5Y], 1e-6)

	// alpha is base 1-year return over the market's expected return
	base1Y := fc.Composite[contracts.ScenarioBase][contracts.Horizon1Y]
	assert.InDelta(t, ((base1Y-100)/100-0.10)*100, fc.Alpha1YPct, 1e-9)

	require.NotNil(t, fc.DCFIntrinsicValue)
	require.NotNil(t, fc.MarginOfSafetyPct)
}

func TestComposite_SurvivesSingleModelFailure(t *testing.T) {
	e := testEngine()
	snap := forecastSnapshot()
	snap.FreeCashFlowTTM = nil
	snap.CashFlow = nil // DCF cannot run

	fc, err := e.Composite(snap, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, fc.ModelsUsed)
	_, ok := fc.Model(contracts.ModelDCF)
	assert.False(t, ok)
	assert.Nil(t, fc.DCFIntrinsicValue)
	assert.Nil(t, fc.MarginOfSafetyPct)
}

func TestComposite_FailsWhenNoModelRuns(t *testing.T) {
	e := testEngine()
	snap := forecastSnapshot()
	snap.SharesOutstanding = nil

	_, err := e.Composite(snap, nil)
	assert.Error(t, err)
}

func TestComposite_RejectsStructurallyInvalid(t *testing.T) {
	e := testEngine()
	snap := forecastSnapshot()
	snap.SharesOutstanding = f(-10)

	_, err := e.Composite(snap, nil)
	assert.Error(t, err)
}

func TestComposite_UnknownMarketFallsBack(t *testing.T) {
	e := testEngine()
	snap := forecastSnapshot()
	snap.Market = "DAX40"

	fc, err := e.Composite(snap, nil)
	require.NoError(t, err)
	assert.InDelta(t, 100*1.10, fc.MarketBenchmark[contracts.Horizon1Y], 1e-9)
}
