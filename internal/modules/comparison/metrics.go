package comparison

import (
	"github.com/aristath/benchcompare/internal/domain"
	"github.com/aristath/benchcompare/pkg/formulas"
)

// Volatility is the sample standard deviation of the series' defined returns.
func Volatility(returns ReturnSeries) Metric {
	values := returns.Defined()
	if len(values) < 2 {
		return undefined(ReasonInsufficientObservations)
	}
	return finite(formulas.SampleStdDev(values))
}

// Beta is cov(instrument, benchmark) / var(benchmark), both sample estimates taken
// over the dates where the two series have a defined return.
func Beta(instrument, benchmark ReturnSeries) Metric {
	x, y := pairwise(instrument, benchmark)
	if len(x) < 2 {
		return undefined(ReasonInsufficientObservations)
	}

	variance := formulas.SampleVariance(y)
	if variance == 0 || constant(y) {
		return undefined(ReasonZeroBenchmarkVariance)
	}
	return finite(formulas.SampleCovariance(x, y) / variance)
}

// TrackingError is the mean squared difference between instrument and benchmark
// returns over the dates where both are defined.
func TrackingError(instrument, benchmark ReturnSeries) Metric {
	x, y := pairwise(instrument, benchmark)
	if len(x) == 0 {
		return undefined(ReasonNoOverlappingDates)
	}
	return finite(formulas.MeanSquaredDifference(x, y))
}

// pairwise returns the paired defined returns of x and y, in x's date order.
// Any date missing on either side is dropped.
func pairwise(x, y ReturnSeries) ([]float64, []float64) {
	other := y.byDay()

	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(x))
	for _, p := range x {
		if p.Return == nil {
			continue
		}
		v, ok := other[domain.DayKey(p.Date)]
		if !ok {
			continue
		}
		xs = append(xs, *p.Return)
		ys = append(ys, v)
	}
	return xs, ys
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func finite(v float64) Metric {
	if !formulas.IsFinite(v) {
		return undefined(ReasonNonFinite)
	}
	return defined(v)
}
