package provider

import (
	"context"
	"sort"
	"sync"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/pkg/logger"
)

// Default trailing window fetched for momentum and risk metrics. A full
// year of sessions plus slack for the 200-day average warmup.
const DefaultPriceDays = 365

// Result is one company's fetch outcome. Snapshot and Prices fail
// independently: a company with fundamentals but no price history still
// screens, it just loses its momentum score.
type Result struct {
	Ticker   string
	Snapshot *contracts.FinancialSnapshot
	Prices   []contracts.Bar
	Err      error
}

// Collector fans snapshot and price fetches out across a worker pool.
type Collector struct {
	provider Provider
	workers  int
	logger   *logger.Logger
}

// NewCollector creates a collector with the given concurrency.
func NewCollector(p Provider, workers int, log *logger.Logger) *Collector {
	if workers < 1 {
		workers = 1
	}
	return &Collector{
		provider: p,
		workers:  workers,
		logger:   log.WithComponent("collector"),
	}
}

// Collect fetches every ticker concurrently and returns results sorted
// by ticker. One ticker's failure never aborts the batch.
func (c *Collector) Collect(ctx context.Context, tickers []string, priceDays int) []Result {
	c.logger.WithFields(map[string]interface{}{
		"tickers": len(tickers),
		"workers": c.workers,
	}).Info("Starting collection")

	tickerCh := make(chan string, len(tickers))
	resultCh := make(chan Result, len(tickers))

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range tickerCh {
				resultCh <- c.fetchOne(ctx, ticker, priceDays)
			}
		}()
	}

	for _, t := range tickers {
		tickerCh <- t
	}
	close(tickerCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]Result, 0, len(tickers))
	var failed int
	for r := range resultCh {
		if r.Err != nil {
			failed++
		}
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Ticker < results[j].Ticker
	})

	c.logger.WithFields(map[string]interface{}{
		"fetched": len(results) - failed,
		"failed":  failed,
	}).Info("Collection complete")

	return results
}

func (c *Collector) fetchOne(ctx context.Context, ticker string, priceDays int) Result {
	result := Result{Ticker: ticker}

	if ctx.Err() != nil {
		result.Err = ctx.Err()
		return result
	}

	snap, err := c.provider.Snapshot(ctx, ticker)
	if err != nil {
		result.Err = err
		if IsTransient(err) {
			c.logger.WithError(err).WithField("ticker", ticker).Warn("Snapshot fetch failed, retryable")
		} else {
			c.logger.WithError(err).WithField("ticker", ticker).Info("Snapshot unavailable")
		}
		return result
	}
	result.Snapshot = snap

	bars, err := c.provider.Prices(ctx, ticker, priceDays)
	if err != nil {
		// Missing history degrades momentum and risk only.
		c.logger.WithError(err).WithField("ticker", ticker).Debug("Price history unavailable")
		return result
	}
	result.Prices = bars

	return result
}
