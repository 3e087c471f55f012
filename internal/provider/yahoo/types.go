package yahoo

import "context"

type request struct {
	ctx    context.Context
	ticker string
	url    string
}

// rawValue is Yahoo's number envelope: {"raw": 1.23, "fmt": "1.23"}.
// Raw stays nil when the field is absent or null.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type rawDate struct {
	Fmt string `json:"fmt"` // "2006-01-02"
}

// year returns the fiscal-year label of the statement date.
func (d rawDate) year() string {
	if len(d.Fmt) < 4 {
		return ""
	}
	return d.Fmt[:4]
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type quoteSummaryResult struct {
	Price struct {
		LongName           string   `json:"longName"`
		RegularMarketPrice rawValue `json:"regularMarketPrice"`
		MarketCap          rawValue `json:"marketCap"`
	} `json:"price"`

	SummaryDetail struct {
		FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
		TrailingPE       rawValue `json:"trailingPE"`
		ForwardPE        rawValue `json:"forwardPE"`
		PayoutRatio      rawValue `json:"payoutRatio"`
		Beta             rawValue `json:"beta"`
	} `json:"summaryDetail"`

	DefaultKeyStatistics struct {
		SharesOutstanding rawValue `json:"sharesOutstanding"`
	} `json:"defaultKeyStatistics"`

	FinancialData struct {
		FreeCashflow   rawValue `json:"freeCashflow"`
		EarningsGrowth rawValue `json:"earningsGrowth"`
	} `json:"financialData"`

	AssetProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`

	IncomeStatementHistory struct {
		Statements []incomeEntry `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`

	BalanceSheetHistory struct {
		Statements []balanceEntry `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`

	CashflowStatementHistory struct {
		Statements []cashflowEntry `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
}

type incomeEntry struct {
	EndDate          rawDate  `json:"endDate"`
	TotalRevenue     rawValue `json:"totalRevenue"`
	OperatingIncome  rawValue `json:"operatingIncome"`
	IncomeTaxExpense rawValue `json:"incomeTaxExpense"`
	IncomeBeforeTax  rawValue `json:"incomeBeforeTax"`
	NetIncome        rawValue `json:"netIncome"`
	InterestExpense  rawValue `json:"interestExpense"`
}

type balanceEntry struct {
	EndDate                 rawDate  `json:"endDate"`
	TotalAssets             rawValue `json:"totalAssets"`
	TotalCurrentLiabilities rawValue `json:"totalCurrentLiab"`
	ShortLongTermDebt       rawValue `json:"shortLongTermDebt"`
	LongTermDebt            rawValue `json:"longTermDebt"`
	TotalStockholderEquity  rawValue `json:"totalStockholderEquity"`
	Cash                    rawValue `json:"cash"`
	NetReceivables          rawValue `json:"netReceivables"`
}

type cashflowEntry struct {
	EndDate                          rawDate  `json:"endDate"`
	TotalCashFromOperatingActivities rawValue `json:"totalCashFromOperatingActivities"`
	CapitalExpenditures              rawValue `json:"capitalExpenditures"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}
