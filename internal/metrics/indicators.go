package metrics

import "github.com/quantlab/valuescreen/internal/contracts"

// Technical indicator primitives over close-price series. All series
// are ordered oldest first.

const (
	rsiPeriod  = 14
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
	smaShort   = 50
	smaLong    = 200
)

// Closes extracts the close series from price bars.
func Closes(bars []contracts.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// RSI computes Wilder's relative strength index over the trailing
// window, smoothing across the full series. Needs at least period+1
// samples.
func RSI(closes []float64, period int) (float64, bool) {
	if len(closes) < period+1 {
		return 0, false
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		var gain, loss float64
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// EMA returns the exponential moving average series, seeded with the
// simple average of the first period values. Nil when the series is
// shorter than the period.
func EMA(values []float64, period int) []float64 {
	if len(values) < period {
		return nil
	}

	var seed float64
	for _, v := range values[:period] {
		seed += v
	}
	ema := seed / float64(period)

	out := make([]float64, 0, len(values)-period+1)
	out = append(out, ema)

	k := 2.0 / float64(period+1)
	for _, v := range values[period:] {
		ema = v*k + ema*(1-k)
		out = append(out, ema)
	}
	return out
}

// MACD returns the latest MACD line, signal line and histogram for the
// standard 12/26/9 configuration.
func MACD(closes []float64) (line, signal, histogram float64, ok bool) {
	if len(closes) < macdSlow+macdSignal {
		return 0, 0, 0, false
	}

	fast := EMA(closes, macdFast)
	slow := EMA(closes, macdSlow)

	// The fast EMA starts earlier; align both on the slow EMA's start.
	offset := macdSlow - macdFast
	macdLine := make([]float64, len(slow))
	for i := range slow {
		macdLine[i] = fast[i+offset] - slow[i]
	}

	signalLine := EMA(macdLine, macdSignal)
	if len(signalLine) == 0 {
		return 0, 0, 0, false
	}

	line = macdLine[len(macdLine)-1]
	signal = signalLine[len(signalLine)-1]
	return line, signal, line - signal, true
}

// SMA returns the simple moving average of the trailing window.
func SMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	var sum float64
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period), true
}
