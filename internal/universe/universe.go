// Package universe resolves the list of companies screened per market.
// Resolution order: cache, database, built-in lists. The scraper
// refreshes the database from index constituent pages.
package universe

import "fmt"

// Constituent is one index member.
type Constituent struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// Markets lists the supported market keys.
func Markets() []string {
	return []string{"SP500", "NIFTY100", "FTSE100"}
}

// Valid reports whether market is a supported key.
func Valid(market string) bool {
	for _, m := range Markets() {
		if m == market {
			return true
		}
	}
	return false
}

// yahooSuffix maps a market to the exchange suffix its tickers carry on
// the data source.
var yahooSuffix = map[string]string{
	"NIFTY100": ".NS",
	"FTSE100":  ".L",
}

// Symbol returns the data-source symbol for a raw constituent ticker.
func Symbol(market, ticker string) string {
	return ticker + yahooSuffix[market]
}

// ErrUnknownMarket is returned for markets outside Markets().
type ErrUnknownMarket struct {
	Market string
}

func (e *ErrUnknownMarket) Error() string {
	return fmt.Sprintf("unknown market %q", e.Market)
}
