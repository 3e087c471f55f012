package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_FlagsOutOfRange(t *testing.T) {
	rec := NewRecorder()

	Check(rec, "AAPL", "roic", 1.5)    // above cap region
	Check(rec, "AAPL", "roic", 0.25)   // in range
	Check(rec, "XYZ", "debt_to_equity", 120) // distressed marker territory
	Check(rec, "XYZ", "trailing_pe", -4)
	Check(rec, "XYZ", "fcf_cagr", 3.2)

	flags := rec.Flags()
	require.Len(t, flags, 4)
	assert.Equal(t, "roic", flags[0].Metric)
	assert.Equal(t, 1.5, flags[0].Value)
	assert.Equal(t, "debt_to_equity", flags[1].Metric)
}

func TestCheck_UnknownMetricIgnored(t *testing.T) {
	rec := NewRecorder()
	Check(rec, "AAPL", "momentum_score", 9999)
	assert.Empty(t, rec.Flags())
}

func TestCheck_NilReporterSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Check(nil, "AAPL", "roic", 5.0)
	})
}

func TestCheck_BoundaryValuesPass(t *testing.T) {
	rec := NewRecorder()
	Check(rec, "AAPL", "roic", -0.50)
	Check(rec, "AAPL", "roic", 1.00)
	Check(rec, "AAPL", "trailing_pe", 0)
	Check(rec, "AAPL", "trailing_pe", 200)
	assert.Empty(t, rec.Flags())
}
