package provider

import (
	"context"
	"time"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/pkg/logger"
	"github.com/quantlab/valuescreen/pkg/redis"
)

// Cached wraps a provider with Redis TTL caching. Fundamentals barely
// move between fiscal quarters and get a long TTL; prices go stale
// within the session and get a short one. Failures are never cached.
type Cached struct {
	inner          Provider
	cache          *redis.Cache
	fundamentalTTL time.Duration
	priceTTL       time.Duration
	logger         *logger.Logger
}

// NewCached layers caching over inner.
func NewCached(inner Provider, cache *redis.Cache, fundamentalTTL, priceTTL time.Duration, log *logger.Logger) *Cached {
	return &Cached{
		inner:          inner,
		cache:          cache,
		fundamentalTTL: fundamentalTTL,
		priceTTL:       priceTTL,
		logger:         log.WithComponent("provider_cache"),
	}
}

// Snapshot serves from cache when fresh, fetching through on a miss.
func (c *Cached) Snapshot(ctx context.Context, ticker string) (*contracts.FinancialSnapshot, error) {
	key := redis.SnapshotKey(ticker)

	var cached contracts.FinancialSnapshot
	if hit, err := c.cache.Get(ctx, key, &cached); err == nil && hit {
		c.logger.WithField("ticker", ticker).Debug("Snapshot cache hit")
		return &cached, nil
	}

	snap, err := c.inner.Snapshot(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, snap, c.fundamentalTTL); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Snapshot cache write failed")
	}
	return snap, nil
}

// Prices serves from cache when fresh, fetching through on a miss.
func (c *Cached) Prices(ctx context.Context, ticker string, days int) ([]contracts.Bar, error) {
	key := redis.PriceSeriesKey(ticker, days)

	var cached []contracts.Bar
	if hit, err := c.cache.Get(ctx, key, &cached); err == nil && hit {
		c.logger.WithField("ticker", ticker).Debug("Price cache hit")
		return cached, nil
	}

	bars, err := c.inner.Prices(ctx, ticker, days)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, bars, c.priceTTL); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Price cache write failed")
	}
	return bars, nil
}
