package screening

import (
	"fmt"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/screenconfig"
)

// Filter reasons, used in the funnel summary. A required metric that
// could not be computed counts as a failure of its filter: an unknown
// ROIC cannot prove quality.
const (
	reasonROIC            = "roic"
	reasonDebtToEquity    = "debt_to_equity"
	reasonFCFPositive     = "fcf_positive"
	reasonEarningsQuality = "earnings_quality"
	reasonValuation       = "valuation"
)

// qualityFilter applies the business-quality gates. Returns the first
// failing reason.
func qualityFilter(m *contracts.MetricSet, cfg screenconfig.ScreenConfig) (string, bool) {
	if m.ROIC == nil || *m.ROIC < cfg.MinROIC {
		return reasonROIC, false
	}
	if m.DebtToEquity == nil || *m.DebtToEquity > cfg.MaxDebtToEquity {
		return reasonDebtToEquity, false
	}
	if cfg.RequireFCFPositive && !fcfAllPositive(m.FCFTrend) {
		return reasonFCFPositive, false
	}
	// Earnings quality is informational: an absent score never rejects.
	if cfg.MinEarningsQuality > 0 && m.EarningsQuality != nil && *m.EarningsQuality < cfg.MinEarningsQuality {
		return reasonEarningsQuality, false
	}
	return "", true
}

// valuationFilter keeps companies still trading near their 52-week low.
func valuationFilter(m *contracts.MetricSet, cfg screenconfig.ScreenConfig) (string, bool) {
	if m.DistanceFromLow == nil || *m.DistanceFromLow > cfg.MaxDistanceFromLowPct {
		return reasonValuation, false
	}
	return "", true
}

// fcfAllPositive requires every trend year to be reported with positive
// free cash flow. A gap in the trend disqualifies: positivity cannot be
// asserted across an unreported year.
func fcfAllPositive(trend []contracts.FCFYear) bool {
	if len(trend) < 2 {
		return false
	}
	for _, y := range trend {
		if y.FCF == nil || *y.FCF <= 0 {
			return false
		}
	}
	return true
}

// Summary is the filter funnel of one screening run.
type Summary struct {
	Candidates int            `json:"candidates"`
	Structural int            `json:"structural_errors"`
	Rejected   map[string]int `json:"rejected"`
	Ranked     int            `json:"ranked"`
}

func newSummary(candidates int) Summary {
	return Summary{Candidates: candidates, Rejected: make(map[string]int)}
}

func (s *Summary) String() string {
	return fmt.Sprintf("candidates=%d structural=%d rejected=%v ranked=%d",
		s.Candidates, s.Structural, s.Rejected, s.Ranked)
}
