package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/provider"
)

// Prices fetches the trailing daily series for one ticker. Days maps
// onto the nearest chart range the API supports; bars come back oldest
// first with null sessions dropped.
func (c *Client) Prices(ctx context.Context, ticker string, days int) ([]contracts.Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		c.baseURL, url.PathEscape(ticker), chartRange(days))

	body, err := c.fetchJSON(request{ctx: ctx, ticker: ticker, url: u})
	if err != nil {
		return nil, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &provider.Unavailable{Ticker: ticker, Kind: provider.KindTransient,
			Err: fmt.Errorf("decode chart: %w", err)}
	}
	if e := parsed.Chart.Error; e != nil {
		return nil, &provider.Unavailable{Ticker: ticker, Kind: provider.KindMissing,
			Err: fmt.Errorf("%s: %s", e.Code, e.Description)}
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, &provider.Unavailable{Ticker: ticker, Kind: provider.KindEmpty}
	}

	result := parsed.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]contracts.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		var volume int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		bars = append(bars, contracts.Bar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   floatAt(quote.Open, i),
			High:   floatAt(quote.High, i),
			Low:    floatAt(quote.Low, i),
			Close:  *quote.Close[i],
			Volume: volume,
		})
	}

	if len(bars) == 0 {
		return nil, &provider.Unavailable{Ticker: ticker, Kind: provider.KindEmpty}
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"bars":   len(bars),
	}).Debug("Fetched prices")

	return bars, nil
}

func floatAt(row []*float64, i int) float64 {
	if i >= len(row) || row[i] == nil {
		return 0
	}
	return *row[i]
}

func chartRange(days int) string {
	switch {
	case days <= 5:
		return "5d"
	case days <= 31:
		return "1mo"
	case days <= 93:
		return "3mo"
	case days <= 186:
		return "6mo"
	case days <= 366:
		return "1y"
	case days <= 731:
		return "2y"
	default:
		return "5y"
	}
}
