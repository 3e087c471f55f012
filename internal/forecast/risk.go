package forecast

import (
	"math"

	"github.com/quantlab/valuescreen/internal/contracts"
	"github.com/quantlab/valuescreen/internal/metrics"
)

const (
	tradingDays = 252
	minRiskBars = 20
)

// Risk derives volatility, drawdown and Sharpe ratio from the trailing
// price series. Beta is always reported; the series-derived fields are
// absent when history is too short to be meaningful.
func Risk(snap *contracts.FinancialSnapshot, bars []contracts.Bar, riskFreeRate float64, projectedAnnualReturn *float64) contracts.RiskMetrics {
	risk := contracts.RiskMetrics{Beta: betaOrDefault(snap)}

	closes := metrics.Closes(bars)
	if len(closes) < minRiskBars {
		return risk
	}

	returns := dailyReturns(closes)

	vol := stddev(returns) * math.Sqrt(tradingDays)
	risk.AnnualVolatility = contracts.Float(vol)
	risk.MaxDrawdownPct = contracts.Float(maxDrawdown(returns) * 100)

	if vol <= 0 {
		return risk
	}

	// Sharpe on the forecast's own base return when we have one,
	// otherwise on the annualized trailing return.
	expected := 0.0
	switch {
	case projectedAnnualReturn != nil:
		expected = *projectedAnnualReturn
	default:
		total := closes[len(closes)-1]/closes[0] - 1
		expected = math.Pow(1+total, tradingDays/float64(len(closes))) - 1
	}
	risk.SharpeRatio = contracts.Float((expected - riskFreeRate) / vol)

	return risk
}

func dailyReturns(closes []float64) []float64 {
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	return returns
}

// stddev is the sample standard deviation.
func stddev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// maxDrawdown is the deepest peak-to-trough decline of the compounded
// return path, as a negative fraction.
func maxDrawdown(returns []float64) float64 {
	cumulative := 1.0
	peak := 1.0
	worst := 0.0
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		if dd := (cumulative - peak) / peak; dd < worst {
			worst = dd
		}
	}
	return worst
}
