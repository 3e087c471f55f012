package contracts

// Confidence is a coarse data-completeness label. Purely informational;
// it never excludes a company from screening.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// FCFYear is one year of the free-cash-flow trend, chronological order.
type FCFYear struct {
	Year string   `json:"year"`
	FCF  *float64 `json:"fcf"`
}

// MetricSet is the per-company bag of indicators the metrics engine
// derives from one FinancialSnapshot. Every indicator is independently
// optional: nil means "could not be computed", never zero.
//
// ValueScore is deliberately not part of this set. It is
// universe-relative and only the screening pipeline can compute it.
type MetricSet struct {
	ROIC             *float64  `json:"roic"`
	DebtToEquity     *float64  `json:"debt_to_equity"`
	FCFTrend         []FCFYear `json:"fcf_trend"`
	DistanceFromHigh *float64  `json:"distance_from_high"` // percent, <= 0
	DistanceFromLow  *float64  `json:"distance_from_low"`  // percent, >= 0
	EarningsQuality  *float64  `json:"earnings_quality_score"` // 0-100
	MomentumScore    *float64  `json:"momentum_score"`         // 0-100

	Confidence Confidence `json:"confidence"`
}

// FCFValues returns the non-nil trend values in chronological order.
func (m *MetricSet) FCFValues() []float64 {
	values := make([]float64, 0, len(m.FCFTrend))
	for _, y := range m.FCFTrend {
		if y.FCF != nil {
			values = append(values, *y.FCF)
		}
	}
	return values
}
