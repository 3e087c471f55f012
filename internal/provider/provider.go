// Package provider fetches per-company financial snapshots and price
// history from the market data source, with caching and concurrent
// collection layered on top.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/quantlab/valuescreen/internal/contracts"
)

// Provider is the data source the engines run on.
type Provider interface {
	// Snapshot fetches the full fundamental snapshot for one ticker.
	Snapshot(ctx context.Context, ticker string) (*contracts.FinancialSnapshot, error)
	// Prices fetches the trailing daily price series, oldest first.
	Prices(ctx context.Context, ticker string, days int) ([]contracts.Bar, error)
}

// UnavailableKind classifies why data could not be served.
type UnavailableKind string

const (
	// KindTransient: the source failed in a way a retry may fix.
	KindTransient UnavailableKind = "transient"
	// KindMissing: the source does not know this ticker.
	KindMissing UnavailableKind = "missing"
	// KindEmpty: the source answered but returned nothing usable.
	KindEmpty UnavailableKind = "empty"
)

// Unavailable is the typed fetch failure. Callers branch on the kind:
// transient failures are worth retrying on the next run, missing and
// empty tickers are not.
type Unavailable struct {
	Ticker string
	Kind   UnavailableKind
	Err    error
}

func (e *Unavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: data unavailable (%s): %v", e.Ticker, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: data unavailable (%s)", e.Ticker, e.Kind)
}

func (e *Unavailable) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a retryable fetch failure.
func IsTransient(err error) bool {
	var u *Unavailable
	return errors.As(err, &u) && u.Kind == KindTransient
}

// IsMissing reports whether the source does not carry the ticker.
func IsMissing(err error) bool {
	var u *Unavailable
	return errors.As(err, &u) && u.Kind == KindMissing
}

// IsEmpty reports whether the source returned no usable data.
func IsEmpty(err error) bool {
	var u *Unavailable
	return errors.As(err, &u) && u.Kind == KindEmpty
}
