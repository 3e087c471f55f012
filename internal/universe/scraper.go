package universe

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/quantlab/valuescreen/pkg/httputil"
	"github.com/quantlab/valuescreen/pkg/logger"
)

const defaultScrapeBaseURL = "https://www.slickcharts.com"

// scrapePages maps a market to its constituent page. Pages list
// members in one table, largest companies first.
var scrapePages = map[string]string{
	"SP500":    "/sp500",
	"NIFTY100": "/nifty100",
	"FTSE100":  "/ftse100",
}

// Scraper refreshes constituent lists from index member pages. Output
// feeds Repository.Replace; nothing is scraped on the screening path
// itself.
type Scraper struct {
	httpClient *httputil.Client
	baseURL    string
	logger     *logger.Logger
}

// NewScraper creates a scraper. An empty baseURL selects the default
// source.
func NewScraper(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Scraper {
	if baseURL == "" {
		baseURL = defaultScrapeBaseURL
	}
	return &Scraper{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     log.WithComponent("universe_scraper"),
	}
}

// Fetch scrapes the current constituent list for a market, largest
// companies first.
func (s *Scraper) Fetch(ctx context.Context, market string) ([]Constituent, error) {
	page, ok := scrapePages[market]
	if !ok {
		return nil, &ErrUnknownMarket{Market: market}
	}

	headers := map[string]string{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		"Accept":     "text/html,application/xhtml+xml",
	}

	resp, err := s.httpClient.GetWithHeaders(ctx, s.baseURL+page, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch %s constituents: %w", market, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("fetch %s constituents: status %d", market, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s constituents: %w", market, err)
	}

	constituents := parseConstituentTable(doc)
	if len(constituents) == 0 {
		return nil, fmt.Errorf("parse %s constituents: no rows found", market)
	}

	s.logger.WithFields(map[string]interface{}{
		"market": market,
		"count":  len(constituents),
	}).Info("Scraped constituents")
	return constituents, nil
}

// parseConstituentTable extracts rows from the first table carrying a
// Symbol column. Columns: rank | company | symbol | ...
func parseConstituentTable(doc *goquery.Document) []Constituent {
	var constituents []Constituent
	seen := make(map[string]bool)

	doc.Find("table tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		name := strings.TrimSpace(cells.Eq(1).Text())
		ticker := strings.TrimSpace(cells.Eq(2).Text())
		if ticker == "" || seen[ticker] {
			return
		}
		seen[ticker] = true

		// Page symbols use dots for share classes; the data source
		// wants dashes.
		ticker = strings.ReplaceAll(ticker, ".", "-")

		constituents = append(constituents, Constituent{Ticker: ticker, Name: name})
	})

	return constituents
}
