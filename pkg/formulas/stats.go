// Package formulas provides the statistical reductions used by the comparison engine.
// All functions operate on already-filtered data: callers drop missing observations
// before reducing.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values.
// Returns NaN for empty input so callers can tell "no data" from a zero mean.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return stat.Mean(data, nil)
}

// SampleVariance calculates the unbiased (n-1) variance.
// Returns NaN when fewer than two observations are available.
func SampleVariance(data []float64) float64 {
	if len(data) < 2 {
		return math.NaN()
	}
	return stat.Variance(data, nil)
}

// SampleStdDev calculates the unbiased (n-1) standard deviation.
// Returns NaN when fewer than two observations are available.
func SampleStdDev(data []float64) float64 {
	if len(data) < 2 {
		return math.NaN()
	}
	return stat.StdDev(data, nil)
}

// SampleCovariance calculates the unbiased (n-1) covariance between two paired datasets.
// x and y must be the same length; returns NaN when they are not or hold fewer than two pairs.
func SampleCovariance(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return math.NaN()
	}
	return stat.Covariance(x, y, nil)
}

// MeanSquaredDifference calculates mean((x[i]-y[i])^2) over paired datasets.
// Returns NaN for empty or mismatched input.
func MeanSquaredDifference(x, y []float64) float64 {
	if len(x) == 0 || len(x) != len(y) {
		return math.NaN()
	}

	squared := make([]float64, len(x))
	for i := range x {
		d := x[i] - y[i]
		squared[i] = d * d
	}
	return stat.Mean(squared, nil)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
