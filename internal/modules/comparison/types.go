// Package comparison compares two instruments against a benchmark over a window.
//
// The package is a pure computation: it receives three price series and returns a
// Result or a *Failure. It performs no I/O and holds no shared state, so concurrent
// calls need no coordination as long as callers do not mutate the input series.
package comparison

import (
	"encoding/json"
	"time"

	"github.com/aristath/benchcompare/internal/domain"
)

// Instrument pairs a symbol with its raw price history.
type Instrument struct {
	Symbol string
	Prices domain.PriceSeries
}

// Input is everything the engine needs for one comparison.
type Input struct {
	A         Instrument
	B         Instrument
	Benchmark Instrument
}

// ReturnPoint is a daily return for one date. A nil Return means the return is missing.
type ReturnPoint struct {
	Date   time.Time `json:"date"`
	Return *float64  `json:"return"`
}

// ReturnSeries has one point per price point; the first point is always missing.
type ReturnSeries []ReturnPoint

// Defined returns the non-missing returns in series order.
func (s ReturnSeries) Defined() []float64 {
	out := make([]float64, 0, len(s))
	for _, p := range s {
		if p.Return != nil {
			out = append(out, *p.Return)
		}
	}
	return out
}

// DefinedCount returns the number of non-missing returns.
func (s ReturnSeries) DefinedCount() int {
	n := 0
	for _, p := range s {
		if p.Return != nil {
			n++
		}
	}
	return n
}

// byDay indexes defined returns by calendar day.
func (s ReturnSeries) byDay() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, p := range s {
		if p.Return != nil {
			m[domain.DayKey(p.Date)] = *p.Return
		}
	}
	return m
}

// CumulativePoint is the compounded return from the start of the window up to Date.
// Value is nil when the compounded level is not representable as a finite float.
type CumulativePoint struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value"`
}

// CumulativeSeries has one point per return point.
type CumulativeSeries []CumulativePoint

// UndefinedReason explains why a metric has no value.
type UndefinedReason string

const (
	ReasonInsufficientObservations UndefinedReason = "insufficient_observations"
	ReasonZeroBenchmarkVariance    UndefinedReason = "zero_benchmark_variance"
	ReasonNoOverlappingDates       UndefinedReason = "no_overlapping_dates"
	ReasonNonFinite                UndefinedReason = "non_finite"
)

// Metric is a scalar that is either defined (Value != nil) or undefined with a Reason.
type Metric struct {
	Value  *float64        `json:"value"`
	Reason UndefinedReason `json:"reason,omitempty"`
}

// Defined reports whether the metric carries a value.
func (m Metric) Defined() bool {
	return m.Value != nil
}

// Float returns the value and whether it is defined.
func (m Metric) Float() (float64, bool) {
	if m.Value == nil {
		return 0, false
	}
	return *m.Value, true
}

// Err returns nil for a defined metric and an UNDEFINED_METRIC error otherwise.
func (m Metric) Err(name string) error {
	if m.Defined() {
		return nil
	}
	return &UndefinedMetricError{Metric: name, Reason: m.Reason}
}

func defined(v float64) Metric {
	return Metric{Value: &v}
}

func undefined(reason UndefinedReason) Metric {
	return Metric{Reason: reason}
}

// Verdict identifies which instrument has the higher beta.
type Verdict string

const (
	VerdictA            Verdict = "A"
	VerdictB            Verdict = "B"
	VerdictUndetermined Verdict = "undetermined"
)

// InstrumentAnalysis holds every derived series and scalar for one compared instrument.
type InstrumentAnalysis struct {
	Symbol            string           `json:"symbol"`
	DailyReturns      ReturnSeries     `json:"daily_returns"`
	CumulativeReturns CumulativeSeries `json:"cumulative_returns"`
	Volatility        Metric           `json:"volatility"`
	Beta              Metric           `json:"beta"`
	TrackingError     Metric           `json:"tracking_error_mse"`
}

// BenchmarkAnalysis holds the benchmark's derived series.
type BenchmarkAnalysis struct {
	Symbol       string       `json:"symbol"`
	DailyReturns ReturnSeries `json:"daily_returns"`
	Volatility   Metric       `json:"volatility"`
}

// Result is the immutable outcome of one comparison.
type Result struct {
	A            InstrumentAnalysis `json:"a"`
	B            InstrumentAnalysis `json:"b"`
	Benchmark    BenchmarkAnalysis  `json:"benchmark"`
	MoreVolatile Verdict            `json:"more_volatile"`
}

// MoreVolatileSymbol returns the symbol named by the verdict, or "" when undetermined.
func (r *Result) MoreVolatileSymbol() string {
	switch r.MoreVolatile {
	case VerdictA:
		return r.A.Symbol
	case VerdictB:
		return r.B.Symbol
	default:
		return ""
	}
}

// LessVolatileSymbol returns the symbol not named by the verdict, or "" when undetermined.
func (r *Result) LessVolatileSymbol() string {
	switch r.MoreVolatile {
	case VerdictA:
		return r.B.Symbol
	case VerdictB:
		return r.A.Symbol
	default:
		return ""
	}
}

// UndefinedMetrics lists every metric of the result that has no value, as errors.
func (r *Result) UndefinedMetrics() []error {
	var errs []error
	for _, m := range []struct {
		name   string
		metric Metric
	}{
		{r.A.Symbol + ".volatility", r.A.Volatility},
		{r.A.Symbol + ".beta", r.A.Beta},
		{r.A.Symbol + ".tracking_error_mse", r.A.TrackingError},
		{r.B.Symbol + ".volatility", r.B.Volatility},
		{r.B.Symbol + ".beta", r.B.Beta},
		{r.B.Symbol + ".tracking_error_mse", r.B.TrackingError},
		{r.Benchmark.Symbol + ".volatility", r.Benchmark.Volatility},
	} {
		if err := m.metric.Err(m.name); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// MarshalJSON renders the verdict together with the symbol it names.
func (r *Result) MarshalJSON() ([]byte, error) {
	type alias Result
	return json.Marshal(struct {
		*alias
		MoreVolatileSymbol string `json:"more_volatile_symbol,omitempty"`
	}{
		alias:              (*alias)(r),
		MoreVolatileSymbol: r.MoreVolatileSymbol(),
	})
}
