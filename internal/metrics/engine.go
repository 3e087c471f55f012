// Package metrics derives per-company fundamental and technical
// indicators from a FinancialSnapshot and its price history. Every
// indicator is computed independently: missing inputs null out that one
// indicator and the rest of the set still comes through.
package metrics

import (
	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/quality"
	"github.com/quantlab/valuescreen/pkg/logger"
)

// Engine computes the full MetricSet for one company.
type Engine struct {
	logger   *logger.Logger
	reporter quality.Reporter
}

// NewEngine creates a metrics engine. reporter may be nil to disable
// out-of-range flagging.
func NewEngine(log *logger.Logger, reporter quality.Reporter) *Engine {
	return &Engine{
		logger:   log.WithComponent("metrics"),
		reporter: reporter,
	}
}

// Compute derives every indicator from the snapshot and price series.
// bars must be ordered oldest first; an empty series nulls out the
// momentum score only.
func (e *Engine) Compute(snap *contracts.FinancialSnapshot, bars []contracts.Bar) contracts.MetricSet {
	set := contracts.MetricSet{
		ROIC:             e.roic(snap),
		DebtToEquity:     e.debtToEquity(snap),
		FCFTrend:         e.fcfTrend(snap),
		DistanceFromHigh: distanceFromHigh(snap),
		DistanceFromLow:  distanceFromLow(snap),
		EarningsQuality:  e.earningsQuality(snap),
		MomentumScore:    e.momentum(bars),
		Confidence:       Classify(snap),
	}

	if snap.TrailingPE != nil {
		quality.Check(e.reporter, snap.Ticker, "trailing_pe", *snap.TrailingPE)
	}

	e.logger.WithFields(map[string]interface{}{
		"ticker":     snap.Ticker,
		"confidence": set.Confidence,
	}).Debug("Metrics computed")

	return set
}
