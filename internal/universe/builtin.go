package universe

// Built-in constituent lists, sorted by market capitalization
// descending. They back the resolver when neither cache nor database
// has a fresher set. Updated quarterly.
// Last updated: 2026-02-10.

var builtin = map[string][]string{
	"SP500":    sp500,
	"NIFTY100": nifty100,
	"FTSE100":  ftse100,
}

// Builtin returns the static constituent list for a market, largest
// companies first. Names are not carried here; the scraper fills them
// in when it refreshes the database.
func Builtin(market string) ([]Constituent, error) {
	tickers, ok := builtin[market]
	if !ok {
		return nil, &ErrUnknownMarket{Market: market}
	}
	out := make([]Constituent, len(tickers))
	for i, t := range tickers {
		out[i] = Constituent{Ticker: t}
	}
	return out, nil
}

var sp500 = []string{
	"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL",
	"META", "BRK-B", "TSLA", "LLY", "AVGO",
	"V", "JPM", "UNH", "MA", "XOM",
	"COST", "WMT", "HD", "PG", "NFLX",
	"JNJ", "ABBV", "ORCL", "CRM", "BAC",
	"CVX", "MRK", "KO", "PEP", "AMD",
	"TMO", "ADBE", "LIN", "CSCO", "ACN",
	"WFC", "MCD", "ABT", "PM", "GE",
	"ISRG", "QCOM", "TXN", "INTU", "DHR",
	"AMGN", "MS", "AXP", "NOW", "IBM",
	"BX", "CAT", "VZ", "T", "BKNG",
	"PLD", "SPGI", "HON", "GS", "NEE",
	"BLK", "LOW", "CMCSA", "RTX", "UNP",
	"UBER", "SYK", "DE", "MDLZ", "C",
	"SCHW", "AMAT", "PGR", "TJX", "ADP",
	"VRTX", "ADI", "BSX", "CB", "COP",
	"LRCX", "MMC", "BMY", "CI", "FI",
	"REGN", "GILD", "KLAC", "PANW", "SO",
	"SBUX", "ZTS", "DUK", "CME", "SNPS",
	"TMUS", "CL", "MCK", "SLB", "CDNS",
}

var nifty100 = []string{
	"RELIANCE", "TCS", "HDFCBANK", "INFY", "HINDUNILVR",
	"ICICIBANK", "BHARTIARTL", "ITC", "SBIN", "LT",
	"BAJFINANCE", "KOTAKBANK", "HCLTECH", "ASIANPAINT", "AXISBANK",
	"MARUTI", "TITAN", "SUNPHARMA", "ULTRACEMCO", "NESTLEIND",
	"WIPRO", "NTPC", "ONGC", "POWERGRID", "TATAMOTORS",
	"BAJAJFINSV", "TECHM", "ADANIENT", "JSWSTEEL", "DIVISLAB",
	"HINDALCO", "INDUSINDBK", "TATASTEEL", "COALINDIA", "M&M",
	"CIPLA", "DRREDDY", "EICHERMOT", "APOLLOHOSP", "TATACONSUM",
	"GRASIM", "ADANIPORTS", "BRITANNIA", "HEROMOTOCO", "SBILIFE",
	"BAJAJ-AUTO", "SHREECEM", "HDFCLIFE", "UPL", "BPCL",
	"ADANIGREEN", "ADANITRANS", "AMBUJACEM", "BANDHANBNK", "BEL",
	"BERGEPAINT", "BOSCHLTD", "CHOLAFIN", "COLPAL", "DABUR",
	"DLF", "GAIL", "GODREJCP", "HAVELLS", "HINDZINC",
	"ICICIPRULI", "INDIGO", "IOC", "JINDALSTEL", "LUPIN",
	"MARICO", "MCDOWELL-N", "MUTHOOTFIN", "NMDC", "NYKAA",
	"OFSS", "PAGEIND", "PETRONET", "PIDILITIND", "PNB",
	"RECLTD", "SAIL", "SBICARD", "SIEMENS", "TATAPOWER",
	"TORNTPHARM", "TRENT", "VEDL", "ZOMATO", "ABCAPITAL",
	"BANKBARODA", "CANBK", "IDEA", "PFC", "INDUSTOWER",
	"ICICIGI", "MOTHERSON", "PIIND", "TVSMOTOR", "VOLTAS",
}

var ftse100 = []string{
	"AZN", "SHEL", "HSBA", "ULVR", "BP",
	"RIO", "GSK", "REL", "DGE", "BATS",
	"AAL", "GLEN", "BARC", "LSEG", "CPG",
	"NG", "LLOY", "RR", "VOD", "NWG",
	"EXPN", "BA", "AHT", "III", "RKT",
	"TSCO", "PRU", "SSE", "STAN", "IMB",
	"HLN", "ANTO", "LGEN", "SGRO", "BT-A",
	"CRDA", "ABF", "AV", "FLTR", "SN",
	"BNZL", "SMIN", "HLMA", "INF", "CNA",
	"WTB", "IHG", "RTO", "SPX", "SGE",
	"NXT", "ADM", "MNDI", "SKG", "PSON",
	"SDR", "SVT", "UU", "JD", "DCC",
	"BDEV", "ITRK", "WPP", "AVV", "BRBY",
	"TW", "STJ", "PHNX", "KGF", "WEIR",
	"AUTO", "MKS", "OCDO", "MRO", "ENT",
	"HIK", "LAND", "SBRY", "RMV", "ICP",
	"SMDS", "CCH", "MGGT", "BME", "FRAS",
	"HWDN", "IAG", "RS1", "BKG", "EZJ",
	"PSN", "DPLM", "CTEC", "FCIT", "VTY",
	"UTG", "BLND", "GAW", "HSX", "ITV",
}
