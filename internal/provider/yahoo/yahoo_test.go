package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/provider"
	"github.com/quantlab/valuescreen/pkg/config"
	"github.com/quantlab/valuescreen/pkg/httputil"
	"github.com/quantlab/valuescreen/pkg/logger"
)

const quoteSummaryBody = `{"quoteSummary":{"result":[{
	"price":{"longName":"Acme Corp","regularMarketPrice":{"raw":190.5},"marketCap":{"raw":2900000000}},
	"summaryDetail":{"fiftyTwoWeekHigh":{"raw":210.0},"fiftyTwoWeekLow":{"raw":150.0},
		"trailingPE":{"raw":28.4},"forwardPE":{"raw":25.1},"payoutRatio":{"raw":0.15},"beta":{"raw":1.2}},
	"defaultKeyStatistics":{"sharesOutstanding":{"raw":15000000}},
	"financialData":{"freeCashflow":{"raw":99000000},"earningsGrowth":{"raw":0.08}},
	"assetProfile":{"sector":"Technology","industry":"Semiconductors"},
	"incomeStatementHistory":{"incomeStatementHistory":[
		{"endDate":{"fmt":"2025-09-30"},"totalRevenue":{"raw":1000},"operatingIncome":{"raw":200},
		 "incomeTaxExpense":{"raw":25},"incomeBeforeTax":{"raw":100},"netIncome":{"raw":75},
		 "interestExpense":{"raw":-10}},
		{"endDate":{"fmt":"2024-09-30"},"totalRevenue":{"raw":900},"operatingIncome":{"raw":180},
		 "incomeTaxExpense":{"raw":22},"incomeBeforeTax":{"raw":90},"netIncome":{"raw":68}}
	]},
	"balanceSheetHistory":{"balanceSheetStatements":[
		{"endDate":{"fmt":"2025-09-30"},"totalAssets":{"raw":5000},"totalCurrentLiab":{"raw":800},
		 "shortLongTermDebt":{"raw":100},"longTermDebt":{"raw":400},
		 "totalStockholderEquity":{"raw":2000},"cash":{"raw":300},"netReceivables":{"raw":250}},
		{"endDate":{"fmt":"2024-09-30"},"totalAssets":{"raw":4600},
		 "longTermDebt":{"raw":450},"totalStockholderEquity":{"raw":1800}}
	]},
	"cashflowStatementHistory":{"cashflowStatements":[
		{"endDate":{"fmt":"2025-09-30"},"totalCashFromOperatingActivities":{"raw":260},
		 "capitalExpenditures":{"raw":-60}},
		{"endDate":{"fmt":"2024-09-30"},"totalCashFromOperatingActivities":{"raw":230},
		 "capitalExpenditures":{"raw":-55}}
	]}
}],"error":null}}`

const chartBody = `{"chart":{"result":[{
	"timestamp":[1735689600,1735776000,1735862400],
	"indicators":{"quote":[{
		"open":[100.0,101.0,null],
		"high":[102.0,103.0,null],
		"low":[99.0,100.5,null],
		"close":[101.5,102.5,null],
		"volume":[10000,12000,null]
	}]}
}],"error":null}}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{Provider: config.ProviderConfig{
		Timeout:    5 * time.Second,
		RatePerSec: 1000,
		RateBurst:  1000,
	}}

	httpClient := httputil.New(cfg, logger.Nop()).DisableRetry()
	return New(httpClient, srv.URL, logger.Nop())
}

func TestSnapshot(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/ACME"))
		w.Write([]byte(quoteSummaryBody))
	})

	snap, err := c.Snapshot(context.Background(), "ACME")
	require.NoError(t, err)

	assert.Equal(t, "ACME", snap.Ticker)
	assert.Equal(t, "Acme Corp", snap.Name)
	assert.Equal(t, "Technology", snap.Sector)
	assert.Equal(t, 190.5, *snap.CurrentPrice)
	assert.Equal(t, 1.2, *snap.Beta)
	assert.Equal(t, 15000000.0, *snap.SharesOutstanding)
	assert.False(t, snap.FetchedAt.IsZero())

	// statements: newest first, canonical labels
	require.Equal(t, []string{"2025", "2024"}, snap.Income.Years)
	opInc, ok := snap.Income.Lookup(0, contracts.LabelsOperatingIncome...)
	require.True(t, ok)
	assert.Equal(t, 200.0, opInc)

	// short- plus long-term debt
	debt, ok := snap.Balance.Lookup(0, contracts.LabelsTotalDebt...)
	require.True(t, ok)
	assert.Equal(t, 500.0, debt)

	// prior year reported only long-term debt
	debt, ok = snap.Balance.Lookup(1, contracts.LabelsTotalDebt...)
	require.True(t, ok)
	assert.Equal(t, 450.0, debt)

	// derived FCF = operating cash flow + (negative) capex
	fcf, ok := snap.CashFlow.Lookup(0, contracts.LabelsFreeCashFlow...)
	require.True(t, ok)
	assert.Equal(t, 200.0, fcf)

	// a field absent for one year stays nil, not zero
	interest, ok := snap.Income.Series(contracts.LabelsInterestExpense...)
	require.True(t, ok)
	require.Len(t, interest, 2)
	assert.Nil(t, interest[1])
}

func TestSnapshot_MissingTicker(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Snapshot(context.Background(), "NOPE")
	assert.True(t, provider.IsMissing(err))
}

func TestSnapshot_APIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	})

	_, err := c.Snapshot(context.Background(), "NOPE")
	assert.True(t, provider.IsMissing(err))
}

func TestSnapshot_ServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Snapshot(context.Background(), "ACME")
	assert.True(t, provider.IsTransient(err))
}

func TestSnapshot_EmptyResult(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[],"error":null}}`))
	})

	_, err := c.Snapshot(context.Background(), "SHEL")
	assert.True(t, provider.IsEmpty(err))
}

func TestPrices(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v8/finance/chart/ACME"))
		assert.Equal(t, "1y", r.URL.Query().Get("range"))
		w.Write([]byte(chartBody))
	})

	bars, err := c.Prices(context.Background(), "ACME", 365)
	require.NoError(t, err)

	// the null session is dropped
	require.Len(t, bars, 2)
	assert.Equal(t, 101.5, bars[0].Close)
	assert.Equal(t, 102.5, bars[1].Close)
	assert.Equal(t, int64(10000), bars[0].Volume)
	assert.True(t, bars[0].Date.Before(bars[1].Date))
}

func TestPrices_AllNull(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"timestamp":[1735689600],
			"indicators":{"quote":[{"close":[null]}]}}],"error":null}}`))
	})

	_, err := c.Prices(context.Background(), "ACME", 365)
	assert.True(t, provider.IsEmpty(err))
}

func TestChartRange(t *testing.T) {
	assert.Equal(t, "1mo", chartRange(30))
	assert.Equal(t, "1y", chartRange(365))
	assert.Equal(t, "5y", chartRange(1800))
}
