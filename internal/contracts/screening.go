package contracts

// ScreeningResult is one surviving row of a screening run, ordered by
// Rank ascending when returned to callers. A row that passed the
// required filters stays in the results even when optional metrics are
// absent.
type ScreeningResult struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`

	CurrentPrice *float64 `json:"current_price"`
	MarketCap    *float64 `json:"market_cap"`
	High52W      *float64 `json:"high_52w"`
	Low52W       *float64 `json:"low_52w"`

	Metrics MetricSet `json:"metrics"`

	// Universe-relative, filled only after the filtered set is complete.
	ROICPercentile     float64  `json:"roic_percentile"`
	DiscountPercentile float64  `json:"discount_percentile"`
	ValueScore         float64  `json:"value_score"`
	MomentumPercentile *float64 `json:"momentum_percentile"`
	HybridScore        *float64 `json:"hybrid_score"`

	Rank int `json:"rank"` // 1-based
}

// RankScore returns the score ranking was performed on: the hybrid
// score when hybrid ranking was enabled, the value score otherwise.
func (r *ScreeningResult) RankScore() float64 {
	if r.HybridScore != nil {
		return *r.HybridScore
	}
	return r.ValueScore
}
