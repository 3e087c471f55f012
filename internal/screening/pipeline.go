// Package screening turns a universe of financial snapshots into a
// ranked list of quality companies trading at a discount. Filtering is
// per-company and isolated; ranking is universe-relative and runs only
// over the survivors.
package screening

import (
	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/metrics"
	"github.com/quantlab/valuescreen/internal/screenconfig"
	"github.com/quantlab/valuescreen/pkg/logger"
)

// Candidate is one company entering the pipeline: its snapshot plus
// whatever price history the provider could fetch.
type Candidate struct {
	Snapshot *contracts.FinancialSnapshot
	Prices   []contracts.Bar
}

// Outcome is a completed screening run.
type Outcome struct {
	Results []contracts.ScreeningResult `json:"results"`
	Summary Summary                     `json:"summary"`
}

// Pipeline screens candidates against a strategy config.
type Pipeline struct {
	logger *logger.Logger
	engine *metrics.Engine
	cfg    *screenconfig.Config
}

// NewPipeline creates a screening pipeline.
func NewPipeline(log *logger.Logger, engine *metrics.Engine, cfg *screenconfig.Config) *Pipeline {
	return &Pipeline{
		logger: log.WithComponent("screening"),
		engine: engine,
		cfg:    cfg,
	}
}

// Run filters and ranks the candidates. A structurally broken snapshot
// is fatal only to its own company: it is dropped, logged, counted, and
// the run continues.
func (p *Pipeline) Run(candidates []Candidate) *Outcome {
	summary := newSummary(len(candidates))
	survivors := make([]contracts.ScreeningResult, 0, len(candidates))

	for _, c := range candidates {
		if err := c.Snapshot.Validate(); err != nil {
			summary.Structural++
			p.logger.WithError(err).Warn("Dropping structurally invalid snapshot")
			continue
		}

		set := p.engine.Compute(c.Snapshot, c.Prices)

		if reason, ok := qualityFilter(&set, p.cfg.Screen); !ok {
			summary.Rejected[reason]++
			continue
		}
		if reason, ok := valuationFilter(&set, p.cfg.Screen); !ok {
			summary.Rejected[reason]++
			continue
		}

		survivors = append(survivors, contracts.ScreeningResult{
			Ticker:       c.Snapshot.Ticker,
			Name:         c.Snapshot.Name,
			Sector:       c.Snapshot.Sector,
			Industry:     c.Snapshot.Industry,
			CurrentPrice: c.Snapshot.CurrentPrice,
			MarketCap:    c.Snapshot.MarketCap,
			High52W:      c.Snapshot.High52W,
			Low52W:       c.Snapshot.Low52W,
			Metrics:      set,
		})
	}

	results := rank(survivors, p.cfg.Ranking)

	if n := p.cfg.Screen.TopN; n > 0 && len(results) > n {
		results = results[:n]
	}
	summary.Ranked = len(results)

	p.logger.WithFields(map[string]interface{}{
		"candidates": summary.Candidates,
		"structural": summary.Structural,
		"ranked":     summary.Ranked,
	}).Info("Screening run complete")

	return &Outcome{Results: results, Summary: summary}
}
