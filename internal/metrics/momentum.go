package metrics

import (
	"github.com/quantlab/valuescreen/internal/contracts"
)

// Momentum sub-score weights.
const (
	weightRSI     = 0.35
	weightMACD    = 0.35
	weightSMA     = 0.30
	neutralRSILow = 40.0
	neutralRSIHi  = 55.0
)

// momentum scores price action 0-100 from RSI, MACD and moving-average
// position, renormalizing over whichever sub-scores the series length
// allows. Absent when no sub-score is computable.
func (e *Engine) momentum(bars []contracts.Bar) *float64 {
	closes := Closes(bars)

	score, ok := contracts.WeightedAverage([]contracts.WeightedValue{
		{Weight: weightRSI, Value: rsiScore(closes)},
		{Weight: weightMACD, Value: macdScore(closes)},
		{Weight: weightSMA, Value: smaScore(closes)},
	})
	if !ok {
		return nil
	}
	return contracts.Float(score)
}

// rsiScore rewards the neutral zone. RSI in [40, 55] scores 100;
// overbought decays to 0 at RSI 85, oversold decays toward 0 at RSI 0.
func rsiScore(closes []float64) *float64 {
	rsi, ok := RSI(closes, rsiPeriod)
	if !ok {
		return nil
	}
	return contracts.Float(rsiCurve(rsi))
}

func rsiCurve(rsi float64) float64 {
	var score float64
	switch {
	case rsi >= neutralRSILow && rsi <= neutralRSIHi:
		score = 100
	case rsi < neutralRSILow:
		score = rsi * (100 / neutralRSILow)
	default:
		score = 100 - (rsi-neutralRSIHi)*(100/(85-neutralRSIHi))
	}
	if score < 0 {
		score = 0
	}
	return score
}

// macdScore maps the histogram, as a percent of price, linearly from 0
// at -2% to 100 at +2%.
func macdScore(closes []float64) *float64 {
	_, _, histogram, ok := MACD(closes)
	if !ok {
		return nil
	}
	price := closes[len(closes)-1]
	if price == 0 {
		return nil
	}
	return contracts.Float(scaleLinear(histogram/price*100, -2, 2))
}

// smaScore is additive: +30 when price sits above the 50-day average,
// +30 above the 200-day, +40 for a golden cross. Needs a full 200-day
// window.
func smaScore(closes []float64) *float64 {
	short, ok := SMA(closes, smaShort)
	if !ok {
		return nil
	}
	long, ok := SMA(closes, smaLong)
	if !ok {
		return nil
	}

	price := closes[len(closes)-1]
	var score float64
	if price > short {
		score += 30
	}
	if price > long {
		score += 30
	}
	if short > long {
		score += 40
	}
	return contracts.Float(score)
}
