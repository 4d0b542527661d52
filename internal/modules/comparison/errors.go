package comparison

import (
	"errors"
	"fmt"
)

// Reason tags a fatal comparison failure.
type Reason string

const (
	// ReasonEmptySeries means at least one input series had no observations.
	ReasonEmptySeries Reason = "EMPTY_SERIES"
	// ReasonReturnCalcFailed means returns could not be derived from a series.
	ReasonReturnCalcFailed Reason = "RETURN_CALC_FAILED"
)

var (
	// ErrEmptySeries matches any *Failure with ReasonEmptySeries.
	ErrEmptySeries = errors.New("empty price series")
	// ErrReturnCalcFailed matches any *Failure with ReasonReturnCalcFailed.
	ErrReturnCalcFailed = errors.New("return calculation failed")
	// ErrUndefinedMetric matches any *UndefinedMetricError.
	ErrUndefinedMetric = errors.New("undefined metric")
)

// Failure is returned instead of a Result when a precondition fails.
type Failure struct {
	Reason Reason
	Symbol string
	Detail string
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s: %s", f.Reason, f.Symbol)
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	return msg
}

// Is lets errors.Is match a Failure against the reason sentinels.
func (f *Failure) Is(target error) bool {
	switch f.Reason {
	case ReasonEmptySeries:
		return target == ErrEmptySeries
	case ReasonReturnCalcFailed:
		return target == ErrReturnCalcFailed
	}
	return false
}

// UndefinedMetricError reports a single scalar that could not be computed.
type UndefinedMetricError struct {
	Metric string
	Reason UndefinedReason
}

func (e *UndefinedMetricError) Error() string {
	return fmt.Sprintf("UNDEFINED_METRIC: %s: %s", e.Metric, e.Reason)
}

func (e *UndefinedMetricError) Is(target error) bool {
	return target == ErrUndefinedMetric
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
