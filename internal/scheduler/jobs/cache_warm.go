package jobs

import (
	"context"
	"fmt"

	"github.com/quantlab/valuescreen/internal/provider"
	"github.com/quantlab/valuescreen/internal/universe"
	"github.com/quantlab/valuescreen/pkg/logger"
)

// CacheWarmJob fetches every constituent through the cached provider so
// the first screening request of the day hits warm data.
type CacheWarmJob struct {
	resolver  *universe.Resolver
	collector *provider.Collector
	limit     int
	logger    *logger.Logger
}

// NewCacheWarmJob creates a cache warm job. limit > 0 warms only the
// top N constituents per market.
func NewCacheWarmJob(resolver *universe.Resolver, col *provider.Collector, limit int, log *logger.Logger) *CacheWarmJob {
	return &CacheWarmJob{
		resolver:  resolver,
		collector: col,
		limit:     limit,
		logger:    log,
	}
}

// Name returns the job name.
func (j *CacheWarmJob) Name() string {
	return "cache_warm"
}

// Schedule runs daily at 06:00.
func (j *CacheWarmJob) Schedule() string {
	return "0 0 6 * * *"
}

// Run collects every market's universe. Individual fetch failures are
// already isolated by the collector; the job fails only when a whole
// market cannot resolve.
func (j *CacheWarmJob) Run(ctx context.Context) error {
	for _, market := range universe.Markets() {
		constituents, err := j.resolver.Resolve(ctx, market, j.limit)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", market, err)
		}

		results := j.collector.Collect(ctx, universe.Symbols(market, constituents), provider.DefaultPriceDays)

		var failed int
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		j.logger.WithFields(map[string]interface{}{
			"market": market,
			"warmed": len(results) - failed,
			"failed": failed,
		}).Info("Cache warm pass complete")

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}
