package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatement_Lookup(t *testing.T) {
	stmt := &Statement{
		Years: []string{"2025", "2024", "2023"},
		Items: map[string][]*float64{
			"Operating Income":    {Float(120), Float(100), Float(90)},
			"Stockholders Equity": {Float(500), nil, Float(450)},
			"Total Debt":          {Float(0), Float(200), Float(210)},
		},
	}

	v, ok := stmt.Lookup(0, LabelsOperatingIncome...)
	require.True(t, ok)
	assert.Equal(t, 120.0, v)

	// nil cell is skipped, no other label matches
	_, ok = stmt.Lookup(1, LabelsTotalEquity...)
	assert.False(t, ok)

	// zero counts as missing
	_, ok = stmt.Lookup(0, "Total Debt")
	assert.False(t, ok)

	// out of range
	_, ok = stmt.Lookup(3, LabelsOperatingIncome...)
	assert.False(t, ok)
	_, ok = stmt.Lookup(-1, LabelsOperatingIncome...)
	assert.False(t, ok)
}

func TestStatement_LookupFallbackOrder(t *testing.T) {
	stmt := &Statement{
		Years: []string{"2025"},
		Items: map[string][]*float64{
			"EBIT": {Float(75)},
		},
	}

	v, ok := stmt.Lookup(0, LabelsOperatingIncome...)
	require.True(t, ok)
	assert.Equal(t, 75.0, v)
}

func TestStatement_NilSafe(t *testing.T) {
	var stmt *Statement
	assert.True(t, stmt.Empty())
	assert.Equal(t, 0, stmt.YearCount())

	_, ok := stmt.Lookup(0, "Net Income")
	assert.False(t, ok)

	_, ok = stmt.Series("Net Income")
	assert.False(t, ok)
}

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name       string
		components []WeightedValue
		want       float64
		wantOK     bool
	}{
		{
			name: "all present",
			components: []WeightedValue{
				{0.4, Float(100)},
				{0.35, Float(50)},
				{0.25, Float(0)},
			},
			want:   57.5,
			wantOK: true,
		},
		{
			name: "renormalizes over available",
			components: []WeightedValue{
				{0.4, Float(100)},
				{0.35, nil},
				{0.25, nil},
			},
			want:   100,
			wantOK: true,
		},
		{
			name: "two of three",
			components: []WeightedValue{
				{0.6, Float(80)},
				{0.4, nil},
				{0.0, Float(10)},
			},
			want:   80,
			wantOK: true,
		},
		{
			name: "none present",
			components: []WeightedValue{
				{0.5, nil},
				{0.5, nil},
			},
			wantOK: false,
		},
		{
			name:       "empty",
			components: nil,
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WeightedAverage(tt.components)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParamsFor(t *testing.T) {
	table := DefaultMarketParams()

	nifty := ParamsFor(table, "NIFTY100")
	assert.Equal(t, 0.070, nifty.RiskFreeRate)
	assert.Equal(t, 0.12, nifty.ExpectedAnnualReturn)

	// unknown market falls back to SP500-equivalent rates
	unknown := ParamsFor(table, "DAX40")
	assert.Equal(t, 0.045, unknown.RiskFreeRate)
	assert.Equal(t, 0.025, unknown.TerminalGrowth)
}

func TestCompositeForecast_Model(t *testing.T) {
	cf := &CompositeForecast{
		Models: []ForecastModelResult{
			{Model: ModelDCF},
			{Model: ModelROICGrowth},
		},
	}

	m, ok := cf.Model(ModelDCF)
	require.True(t, ok)
	assert.Equal(t, ModelDCF, m.Model)

	_, ok = cf.Model(ModelEarningsMultiple)
	assert.False(t, ok)
}

func TestMetricSet_FCFValues(t *testing.T) {
	m := &MetricSet{FCFTrend: []FCFYear{
		{Year: "2023", FCF: Float(10)},
		{Year: "2024", FCF: nil},
		{Year: "2025", FCF: Float(12)},
	}}

	assert.Equal(t, []float64{10, 12}, m.FCFValues())
}
