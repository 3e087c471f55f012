// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"
	"fmt"

	"github.com/quantlab/valuescreen/internal/universe"
	"github.com/quantlab/valuescreen/pkg/logger"
	"github.com/quantlab/valuescreen/pkg/redis"
)

// UniverseRefreshJob re-scrapes index constituents and replaces the
// stored lists. Index membership changes rarely, so this runs weekly.
type UniverseRefreshJob struct {
	scraper *universe.Scraper
	repo    *universe.Repository
	cache   *redis.Cache
	logger  *logger.Logger
}

// NewUniverseRefreshJob creates a universe refresh job. cache may be
// nil when Redis is disabled.
func NewUniverseRefreshJob(scraper *universe.Scraper, repo *universe.Repository, cache *redis.Cache, log *logger.Logger) *UniverseRefreshJob {
	return &UniverseRefreshJob{
		scraper: scraper,
		repo:    repo,
		cache:   cache,
		logger:  log,
	}
}

// Name returns the job name.
func (j *UniverseRefreshJob) Name() string {
	return "universe_refresh"
}

// Schedule runs Mondays at 05:00, before the first cache warm.
func (j *UniverseRefreshJob) Schedule() string {
	return "0 0 5 * * 1"
}

// Run refreshes every market. One market's scrape failure leaves its
// stored list untouched and does not block the others.
func (j *UniverseRefreshJob) Run(ctx context.Context) error {
	var refreshed int

	for _, market := range universe.Markets() {
		constituents, err := j.scraper.Fetch(ctx, market)
		if err != nil {
			j.logger.WithError(err).WithField("market", market).Warn("Constituent scrape failed, keeping stored list")
			continue
		}

		if err := j.repo.Replace(ctx, market, constituents); err != nil {
			j.logger.WithError(err).WithField("market", market).Error("Constituent store failed")
			continue
		}

		if j.cache != nil {
			if err := j.cache.Delete(ctx, redis.UniverseKey(market)); err != nil {
				j.logger.WithError(err).WithField("market", market).Warn("Universe cache invalidation failed")
			}
		}

		j.logger.WithFields(map[string]interface{}{
			"market": market,
			"count":  len(constituents),
		}).Info("Universe refreshed")
		refreshed++
	}

	if refreshed == 0 {
		return fmt.Errorf("no market could be refreshed")
	}
	return nil
}
