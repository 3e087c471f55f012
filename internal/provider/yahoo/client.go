// Package yahoo implements the market data provider against the Yahoo
// Finance JSON API. All Yahoo HTTP calls live in this package.
package yahoo

import (
	"fmt"
	"io"
	"net/http"

	"github.com/quantlab/valuescreen/internal/provider"
	"github.com/quantlab/valuescreen/pkg/httputil"
	"github.com/quantlab/valuescreen/pkg/logger"
)

const defaultBaseURL = "https://query2.finance.yahoo.com"

// Client fetches snapshots and price series from Yahoo Finance.
type Client struct {
	httpClient *httputil.Client
	baseURL    string
	logger     *logger.Logger
}

// New creates a Yahoo client. baseURL may be empty to use the public
// endpoint.
func New(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     log.WithComponent("yahoo"),
	}
}

var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	"Accept":     "application/json",
}

// fetchJSON gets a URL and returns the body, classifying HTTP failures
// into the provider's error kinds.
func (c *Client) fetchJSON(req request) ([]byte, error) {
	resp, err := c.httpClient.GetWithHeaders(req.ctx, req.url, browserHeaders)
	if err != nil {
		return nil, &provider.Unavailable{Ticker: req.ticker, Kind: provider.KindTransient, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &provider.Unavailable{Ticker: req.ticker, Kind: provider.KindMissing,
			Err: fmt.Errorf("unknown symbol")}
	case resp.StatusCode != http.StatusOK:
		return nil, &provider.Unavailable{Ticker: req.ticker, Kind: provider.KindTransient,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.Unavailable{Ticker: req.ticker, Kind: provider.KindTransient,
			Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
