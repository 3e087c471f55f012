package contracts

import (
	"errors"
	"fmt"
	"time"
)

// FinancialSnapshot is the raw per-company input fetched by the data
// provider. It is immutable once fetched; every field may be absent.
type FinancialSnapshot struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
	Market   string `json:"market"` // listing market key: SP500, NIFTY100, FTSE100

	CurrentPrice      *float64 `json:"current_price"`
	High52W           *float64 `json:"high_52w"`
	Low52W            *float64 `json:"low_52w"`
	MarketCap         *float64 `json:"market_cap"`
	Beta              *float64 `json:"beta"`
	PayoutRatio       *float64 `json:"payout_ratio"`
	TrailingPE        *float64 `json:"trailing_pe"`
	ForwardPE         *float64 `json:"forward_pe"`
	SharesOutstanding *float64 `json:"shares_outstanding"`
	FreeCashFlowTTM   *float64 `json:"free_cash_flow_ttm"`
	EarningsGrowth    *float64 `json:"earnings_growth"`

	Income   *Statement `json:"income"`
	Balance  *Statement `json:"balance"`
	CashFlow *Statement `json:"cash_flow"`

	FetchedAt time.Time `json:"fetched_at"`
}

// Validate rejects snapshots that are structurally impossible rather
// than merely incomplete. Incomplete data degrades individual metrics;
// impossible data invalidates every computation built on it, so the
// company is dropped from the run.
func (s *FinancialSnapshot) Validate() error {
	if s.Ticker == "" {
		return errors.New("snapshot has no ticker")
	}
	if s.SharesOutstanding != nil && *s.SharesOutstanding <= 0 {
		return fmt.Errorf("%s: shares outstanding %.0f must be positive", s.Ticker, *s.SharesOutstanding)
	}
	if s.CurrentPrice != nil && *s.CurrentPrice <= 0 {
		return fmt.Errorf("%s: current price %.4f must be positive", s.Ticker, *s.CurrentPrice)
	}
	if s.High52W != nil && s.Low52W != nil && *s.High52W < *s.Low52W {
		return fmt.Errorf("%s: 52-week high %.4f below 52-week low %.4f", s.Ticker, *s.High52W, *s.Low52W)
	}
	return nil
}

// Statement is a time-indexed table of financial line items.
// Columns are fiscal years, newest first. Cells are nil when the
// source did not report the item for that year.
type Statement struct {
	Years []string              `json:"years"`
	Items map[string][]*float64 `json:"items"`
}

// YearCount returns the number of fiscal-year columns.
func (s *Statement) YearCount() int {
	if s == nil {
		return 0
	}
	return len(s.Years)
}

// Empty reports whether the statement carries no usable data.
func (s *Statement) Empty() bool {
	return s == nil || len(s.Years) == 0 || len(s.Items) == 0
}

// Lookup returns the value for the given fiscal-year column, trying each
// label in order and returning the first present, non-zero match. Source
// data varies its row labels across companies and exchanges, so every
// concept is addressed by a fallback list rather than a single key.
func (s *Statement) Lookup(yearIdx int, labels ...string) (float64, bool) {
	if s.Empty() || yearIdx < 0 || yearIdx >= len(s.Years) {
		return 0, false
	}

	for _, label := range labels {
		row, ok := s.Items[label]
		if !ok || yearIdx >= len(row) {
			continue
		}
		if v := row[yearIdx]; v != nil && *v != 0 {
			return *v, true
		}
	}

	return 0, false
}

// Series returns the full fiscal-year row for the first matching label.
func (s *Statement) Series(labels ...string) ([]*float64, bool) {
	if s.Empty() {
		return nil, false
	}

	for _, label := range labels {
		if row, ok := s.Items[label]; ok {
			return row, true
		}
	}

	return nil, false
}

// Canonical fallback label lists for the statement concepts the engines
// read. Ordered by how commonly each variant appears in source data.
var (
	LabelsOperatingIncome = []string{"Operating Income", "EBIT", "Operating Revenue"}
	LabelsTaxProvision    = []string{"Tax Provision", "Income Tax Expense"}
	LabelsPretaxIncome    = []string{"Pretax Income", "Income Before Tax"}
	LabelsTotalDebt       = []string{"Total Debt", "Long Term Debt", "Net Debt"}
	LabelsTotalEquity     = []string{"Stockholders Equity", "Total Equity Gross Minority Interest", "Total Stockholder Equity"}
	LabelsCash            = []string{"Cash And Cash Equivalents", "Cash", "Cash Cash Equivalents And Short Term Investments"}
	LabelsTotalAssets     = []string{"Total Assets"}
	LabelsCurrentLiab     = []string{"Current Liabilities", "Total Current Liabilities"}
	LabelsFreeCashFlow    = []string{"Free Cash Flow", "FreeCashFlow"}
	LabelsOperatingCF     = []string{"Operating Cash Flow", "Total Cash From Operating Activities", "Cash Flow From Continuing Operating Activities"}
	LabelsNetIncome       = []string{"Net Income", "Net Income Common Stockholders"}
	LabelsTotalRevenue    = []string{"Total Revenue", "Operating Revenue"}
	LabelsReceivables     = []string{"Receivables", "Accounts Receivable", "Net Receivables"}
	LabelsInterestExpense = []string{"Interest Expense", "Interest Expense Non Operating"}
)

// Bar is one OHLCV record of a historical price series.
// Series are ordered by date ascending (oldest first).
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Float returns a pointer to v. Convenience for optional fields.
func Float(v float64) *float64 {
	return &v
}

// FloatOr returns *p, or def when p is nil.
func FloatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
