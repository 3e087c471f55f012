package screening

import (
	"sort"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/screenconfig"
)

// Percentiles returns the ascending average-rank percentile of each
// value: (rank-1)/(n-1), where tied values share the mean of their
// positions. A single element scores 1.0.
func Percentiles(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = 1.0
		return out
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		pct := (avgRank - 1) / float64(n-1)
		for k := i; k <= j; k++ {
			out[idx[k]] = pct
		}
		i = j + 1
	}

	return out
}

// rank fills the universe-relative scores on the surviving rows, sorts
// them best first and assigns ranks. Percentiles only exist relative to
// the filtered set, so this runs strictly after filtering.
func rank(rows []contracts.ScreeningResult, cfg screenconfig.RankingConfig) []contracts.ScreeningResult {
	if len(rows) == 0 {
		return rows
	}

	roics := make([]float64, len(rows))
	discounts := make([]float64, len(rows))
	for i, r := range rows {
		roics[i] = *r.Metrics.ROIC
		// Deeper below the 52-week high means a bigger discount.
		discounts[i] = -contracts.FloatOr(r.Metrics.DistanceFromHigh, 0)
	}

	roicPct := Percentiles(roics)
	discountPct := Percentiles(discounts)

	for i := range rows {
		rows[i].ROICPercentile = roicPct[i]
		rows[i].DiscountPercentile = discountPct[i]
		rows[i].ValueScore = cfg.DiscountWeight*discountPct[i] + cfg.ROICWeight*roicPct[i]
	}

	if cfg.Hybrid {
		applyHybrid(rows, cfg)
	}

	// Stable sort: tied scores keep their input order.
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].RankScore() > rows[b].RankScore()
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows
}

// applyHybrid blends momentum into the ranking. Momentum percentiles
// are computed over the rows that have a momentum score; rows without
// one rank on their value score alone rather than being punished for
// missing price history.
func applyHybrid(rows []contracts.ScreeningResult, cfg screenconfig.RankingConfig) {
	var present []int
	var scores []float64
	for i, r := range rows {
		if r.Metrics.MomentumScore != nil {
			present = append(present, i)
			scores = append(scores, *r.Metrics.MomentumScore)
		}
	}

	momPct := Percentiles(scores)
	for k, i := range present {
		rows[i].MomentumPercentile = contracts.Float(momPct[k])
	}

	for i := range rows {
		hybrid, ok := contracts.WeightedAverage([]contracts.WeightedValue{
			{Weight: cfg.ValueWeight, Value: contracts.Float(rows[i].ValueScore)},
			{Weight: cfg.MomentumWeight, Value: rows[i].MomentumPercentile},
		})
		if ok {
			rows[i].HybridScore = contracts.Float(hybrid)
		}
	}
}
