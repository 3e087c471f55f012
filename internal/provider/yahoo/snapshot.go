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

const quoteSummaryModules = "price,summaryDetail,defaultKeyStatistics,financialData," +
	"assetProfile,incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory"

// Snapshot fetches the fundamental snapshot for one ticker.
func (c *Client) Snapshot(ctx context.Context, ticker string) (*contracts.FinancialSnapshot, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(quoteSummaryModules))

	body, err := c.fetchJSON(request{ctx: ctx, ticker: ticker, url: u})
	if err != nil {
		return nil, err
	}

	var parsed quoteSummaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &provider.Unavailable{Ticker: ticker, Kind: provider.KindTransient,
			Err: fmt.Errorf("decode quote summary: %w", err)}
	}
	if e := parsed.QuoteSummary.Error; e != nil {
		return nil, &provider.Unavailable{Ticker: ticker, Kind: provider.KindMissing,
			Err: fmt.Errorf("%s: %s", e.Code, e.Description)}
	}
	if len(parsed.QuoteSummary.Result) == 0 {
		return nil, &provider.Unavailable{Ticker: ticker, Kind: provider.KindEmpty}
	}

	r := parsed.QuoteSummary.Result[0]

	snap := &contracts.FinancialSnapshot{
		Ticker:            ticker,
		Name:              r.Price.LongName,
		Sector:            r.AssetProfile.Sector,
		Industry:          r.AssetProfile.Industry,
		CurrentPrice:      r.Price.RegularMarketPrice.Raw,
		MarketCap:         r.Price.MarketCap.Raw,
		High52W:           r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		Low52W:            r.SummaryDetail.FiftyTwoWeekLow.Raw,
		Beta:              r.SummaryDetail.Beta.Raw,
		PayoutRatio:       r.SummaryDetail.PayoutRatio.Raw,
		TrailingPE:        r.SummaryDetail.TrailingPE.Raw,
		ForwardPE:         r.SummaryDetail.ForwardPE.Raw,
		SharesOutstanding: r.DefaultKeyStatistics.SharesOutstanding.Raw,
		FreeCashFlowTTM:   r.FinancialData.FreeCashflow.Raw,
		EarningsGrowth:    r.FinancialData.EarningsGrowth.Raw,
		Income:            incomeStatement(r.IncomeStatementHistory.Statements),
		Balance:           balanceStatement(r.BalanceSheetHistory.Statements),
		CashFlow:          cashflowStatement(r.CashflowStatementHistory.Statements),
		FetchedAt:         time.Now().UTC(),
	}

	if snap.CurrentPrice == nil && snap.Income.Empty() {
		return nil, &provider.Unavailable{Ticker: ticker, Kind: provider.KindEmpty}
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"years":  snap.Income.YearCount(),
	}).Debug("Fetched snapshot")

	return snap, nil
}

// statementBuilder accumulates fiscal-year columns into a Statement,
// newest first, mirroring how Yahoo orders its statement history.
type statementBuilder struct {
	years []string
	items map[string][]*float64
}

func newStatementBuilder() *statementBuilder {
	return &statementBuilder{items: make(map[string][]*float64)}
}

func (b *statementBuilder) addYear(year string) {
	b.years = append(b.years, year)
	for label := range b.items {
		b.items[label] = append(b.items[label], nil)
	}
}

func (b *statementBuilder) set(label string, v *float64) {
	col := len(b.years) - 1
	row, ok := b.items[label]
	if !ok {
		row = make([]*float64, len(b.years))
		b.items[label] = row
	}
	for len(row) < len(b.years) {
		row = append(row, nil)
	}
	row[col] = v
	b.items[label] = row
}

func (b *statementBuilder) build() *contracts.Statement {
	if len(b.years) == 0 {
		return nil
	}
	return &contracts.Statement{Years: b.years, Items: b.items}
}

func incomeStatement(entries []incomeEntry) *contracts.Statement {
	b := newStatementBuilder()
	for _, e := range entries {
		year := e.EndDate.year()
		if year == "" {
			continue
		}
		b.addYear(year)
		b.set("Total Revenue", e.TotalRevenue.Raw)
		b.set("Operating Income", e.OperatingIncome.Raw)
		b.set("Tax Provision", e.IncomeTaxExpense.Raw)
		b.set("Pretax Income", e.IncomeBeforeTax.Raw)
		b.set("Net Income", e.NetIncome.Raw)
		b.set("Interest Expense", e.InterestExpense.Raw)
	}
	return b.build()
}

func balanceStatement(entries []balanceEntry) *contracts.Statement {
	b := newStatementBuilder()
	for _, e := range entries {
		year := e.EndDate.year()
		if year == "" {
			continue
		}
		b.addYear(year)
		b.set("Total Assets", e.TotalAssets.Raw)
		b.set("Current Liabilities", e.TotalCurrentLiabilities.Raw)
		b.set("Total Debt", totalDebt(e))
		b.set("Stockholders Equity", e.TotalStockholderEquity.Raw)
		b.set("Cash", e.Cash.Raw)
		b.set("Net Receivables", e.NetReceivables.Raw)
	}
	return b.build()
}

// totalDebt sums short- and long-term debt when either is reported.
func totalDebt(e balanceEntry) *float64 {
	if e.ShortLongTermDebt.Raw == nil && e.LongTermDebt.Raw == nil {
		return nil
	}
	return contracts.Float(contracts.FloatOr(e.ShortLongTermDebt.Raw, 0) +
		contracts.FloatOr(e.LongTermDebt.Raw, 0))
}

func cashflowStatement(entries []cashflowEntry) *contracts.Statement {
	b := newStatementBuilder()
	for _, e := range entries {
		year := e.EndDate.year()
		if year == "" {
			continue
		}
		b.addYear(year)
		b.set("Operating Cash Flow", e.TotalCashFromOperatingActivities.Raw)
		b.set("Free Cash Flow", freeCashFlow(e))
	}
	return b.build()
}

// freeCashFlow derives FCF as operating cash flow plus capital
// expenditures, which Yahoo reports as a negative outflow.
func freeCashFlow(e cashflowEntry) *float64 {
	if e.TotalCashFromOperatingActivities.Raw == nil {
		return nil
	}
	return contracts.Float(*e.TotalCashFromOperatingActivities.Raw +
		contracts.FloatOr(e.CapitalExpenditures.Raw, 0))
}
