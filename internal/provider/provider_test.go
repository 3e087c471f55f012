package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/pkg/logger"
)

func TestUnavailable_Classification(t *testing.T) {
	transient := &Unavailable{Ticker: "AAPL", Kind: KindTransient, Err: errors.New("status 503")}
	missing := &Unavailable{Ticker: "NOPE", Kind: KindMissing}
	empty := &Unavailable{Ticker: "SHEL", Kind: KindEmpty}

	assert.True(t, IsTransient(transient))
	assert.False(t, IsTransient(missing))

	assert.True(t, IsMissing(missing))
	assert.True(t, IsEmpty(empty))

	// classification survives wrapping
	wrapped := fmt.Errorf("collect: %w", transient)
	assert.True(t, IsTransient(wrapped))

	assert.False(t, IsTransient(errors.New("plain")))
}

func TestUnavailable_Error(t *testing.T) {
	e := &Unavailable{Ticker: "AAPL", Kind: KindTransient, Err: errors.New("status 503")}
	assert.Contains(t, e.Error(), "AAPL")
	assert.Contains(t, e.Error(), "transient")

	bare := &Unavailable{Ticker: "NOPE", Kind: KindMissing}
	assert.Contains(t, bare.Error(), "missing")
}

// fakeProvider serves canned outcomes per ticker and records
// concurrency.
type fakeProvider struct {
	mu       sync.Mutex
	inFlight int
	peak     int

	snapshotErr map[string]error
	priceErr    map[string]error
}

func (p *fakeProvider) Snapshot(ctx context.Context, ticker string) (*contracts.FinancialSnapshot, error) {
	p.mu.Lock()
	p.inFlight++
	if p.inFlight > p.peak {
		p.peak = p.inFlight
	}
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.inFlight--
		p.mu.Unlock()
	}()

	if err, ok := p.snapshotErr[ticker]; ok {
		return nil, err
	}
	return &contracts.FinancialSnapshot{Ticker: ticker}, nil
}

func (p *fakeProvider) Prices(ctx context.Context, ticker string, days int) ([]contracts.Bar, error) {
	if err, ok := p.priceErr[ticker]; ok {
		return nil, err
	}
	return []contracts.Bar{{Close: 100}}, nil
}

func TestCollector_FailureIsolation(t *testing.T) {
	fake := &fakeProvider{
		snapshotErr: map[string]error{
			"DOWN": &Unavailable{Ticker: "DOWN", Kind: KindTransient, Err: errors.New("status 500")},
		},
		priceErr: map[string]error{
			"NOHIST": &Unavailable{Ticker: "NOHIST", Kind: KindEmpty},
		},
	}

	c := NewCollector(fake, 4, logger.Nop())
	results := c.Collect(context.Background(), []string{"NOHIST", "DOWN", "AAA"}, DefaultPriceDays)

	require.Len(t, results, 3)
	// sorted by ticker
	assert.Equal(t, "AAA", results[0].Ticker)
	assert.Equal(t, "DOWN", results[1].Ticker)
	assert.Equal(t, "NOHIST", results[2].Ticker)

	assert.NotNil(t, results[0].Snapshot)
	assert.NotEmpty(t, results[0].Prices)

	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Snapshot)

	// price failure degrades, it does not fail the company
	assert.NoError(t, results[2].Err)
	assert.NotNil(t, results[2].Snapshot)
	assert.Empty(t, results[2].Prices)
}

func TestCollector_BoundedConcurrency(t *testing.T) {
	fake := &fakeProvider{}
	c := NewCollector(fake, 3, logger.Nop())

	tickers := make([]string, 50)
	for i := range tickers {
		tickers[i] = fmt.Sprintf("T%03d", i)
	}

	results := c.Collect(context.Background(), tickers, DefaultPriceDays)

	assert.Len(t, results, 50)
	assert.LessOrEqual(t, fake.peak, 3)
}

func TestCollector_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCollector(&fakeProvider{}, 2, logger.Nop())
	results := c.Collect(ctx, []string{"AAA", "BBB"}, DefaultPriceDays)

	for _, r := range results {
		assert.Error(t, r.Err)
	}
}
