package universe

import (
	"context"
	"time"

	"github.com/quantlab/valuescreen/pkg/logger"
	"github.com/quantlab/valuescreen/pkg/redis"
)

const cacheTTL = 24 * time.Hour

// Resolver produces the constituent list for a market. It tries the
// cache, then the database, then the built-in lists, so screening
// still runs with no infrastructure at all.
type Resolver struct {
	cache  *redis.Cache
	repo   *Repository
	logger *logger.Logger
}

// NewResolver creates a resolver. Both cache and repo may be nil; the
// built-in lists always remain as the floor.
func NewResolver(cache *redis.Cache, repo *Repository, log *logger.Logger) *Resolver {
	return &Resolver{
		cache:  cache,
		repo:   repo,
		logger: log.WithComponent("universe"),
	}
}

// Resolve returns a market's constituents, largest companies first.
// limit > 0 truncates to the top N by market cap.
func (r *Resolver) Resolve(ctx context.Context, market string, limit int) ([]Constituent, error) {
	if !Valid(market) {
		return nil, &ErrUnknownMarket{Market: market}
	}

	constituents := r.resolve(ctx, market)

	if limit > 0 && limit < len(constituents) {
		constituents = constituents[:limit]
	}
	return constituents, nil
}

func (r *Resolver) resolve(ctx context.Context, market string) []Constituent {
	if r.cache != nil {
		var cached []Constituent
		if hit, err := r.cache.Get(ctx, redis.UniverseKey(market), &cached); err == nil && hit && len(cached) > 0 {
			r.logger.WithField("market", market).Debug("Universe cache hit")
			return cached
		}
	}

	if r.repo != nil {
		stored, err := r.repo.Constituents(ctx, market)
		if err != nil {
			r.logger.WithError(err).WithField("market", market).Warn("Universe query failed, using built-in list")
		} else if len(stored) > 0 {
			r.cacheResult(ctx, market, stored)
			return stored
		}
	}

	builtin, _ := Builtin(market)
	r.logger.WithFields(map[string]interface{}{
		"market": market,
		"count":  len(builtin),
	}).Debug("Using built-in universe")
	return builtin
}

func (r *Resolver) cacheResult(ctx context.Context, market string, constituents []Constituent) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, redis.UniverseKey(market), constituents, cacheTTL); err != nil {
		r.logger.WithError(err).WithField("market", market).Warn("Universe cache write failed")
	}
}

// Symbols maps constituents to the data-source symbols for a market.
func Symbols(market string, constituents []Constituent) []string {
	out := make([]string, len(constituents))
	for i, c := range constituents {
		out[i] = Symbol(market, c.Ticker)
	}
	return out
}
