package quality

import (
	"sync"

	"github.com/quantlab/valuescreen/pkg/logger"
)

// Reporter receives out-of-range metric flags. Flagging is purely an
// observation channel: the flagged value is preserved unmodified and
// keeps flowing through the pipeline.
type Reporter interface {
	Flag(ticker, metric string, value, min, max float64)
}

// Bounds defines the sanity range for one metric.
type Bounds struct {
	Min float64
	Max float64
}

// DefaultBounds are the sanity ranges metrics are checked against.
// Values outside these ranges are almost always data errors upstream,
// but a real outlier must survive untouched, so they only trigger flags.
var DefaultBounds = map[string]Bounds{
	"roic":           {Min: -0.50, Max: 1.00},
	"debt_to_equity": {Min: 0, Max: 50},
	"trailing_pe":    {Min: 0, Max: 200},
	"fcf_cagr":       {Min: -0.50, Max: 2.00},
}

// Check flags value through r when it falls outside the metric's known
// bounds. Metrics without registered bounds pass silently.
func Check(r Reporter, ticker, metric string, value float64) {
	if r == nil {
		return
	}
	b, ok := DefaultBounds[metric]
	if !ok {
		return
	}
	if value < b.Min || value > b.Max {
		r.Flag(ticker, metric, value, b.Min, b.Max)
	}
}

// LogReporter flags out-of-range values to the structured log.
type LogReporter struct {
	logger *logger.Logger
}

// NewLogReporter creates a reporter writing to the given logger.
func NewLogReporter(log *logger.Logger) *LogReporter {
	return &LogReporter{logger: log.WithComponent("quality")}
}

// Flag logs the out-of-range observation.
func (r *LogReporter) Flag(ticker, metric string, value, min, max float64) {
	r.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"metric": metric,
		"value":  value,
		"min":    min,
		"max":    max,
	}).Warn("Metric outside sanity bounds")
}

// FlagRecord is one recorded out-of-range observation.
type FlagRecord struct {
	Ticker string  `json:"ticker"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Recorder collects flags in memory. Safe for concurrent use; the
// collector fans snapshot fetches out across workers.
type Recorder struct {
	mu    sync.Mutex
	flags []FlagRecord
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Flag records the observation.
func (r *Recorder) Flag(ticker, metric string, value, min, max float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags = append(r.flags, FlagRecord{Ticker: ticker, Metric: metric, Value: value, Min: min, Max: max})
}

// Flags returns a copy of everything recorded so far.
func (r *Recorder) Flags() []FlagRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FlagRecord, len(r.flags))
	copy(out, r.flags)
	return out
}
