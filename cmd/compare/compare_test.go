package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/aristath/benchcompare/internal/modules/comparison"
	"github.com/aristath/benchcompare/internal/services"
	testingpkg "github.com/aristath/benchcompare/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func outcome(t *testing.T, benchmark ...float64) *services.Outcome {
	t.Helper()
	if len(benchmark) == 0 {
		benchmark = []float64{1000, 1015, 1002, 1024, 1010, 1040, 1021}
	}
	result, err := comparison.Compare(comparison.Input{
		A:         comparison.Instrument{Symbol: "HIGH", Prices: testingpkg.DailySeries(start, 100, 103, 99, 106, 101, 110, 104)},
		B:         comparison.Instrument{Symbol: "LOW", Prices: testingpkg.DailySeries(start, 50, 50.4, 50.1, 50.7, 50.3, 51.0, 50.6)},
		Benchmark: comparison.Instrument{Symbol: "^NSEI", Prices: testingpkg.DailySeries(start, benchmark...)},
	})
	require.NoError(t, err)
	return &services.Outcome{Days: 7, Benchmark: "^NSEI", Result: result}
}

func TestWriteOutcome(t *testing.T) {
	var buf bytes.Buffer
	writeOutcome(&buf, outcome(t))

	out := buf.String()
	assert.Contains(t, out, "HIGH vs LOW against ^NSEI (last 7 days)")
	assert.Contains(t, out, "Tracking error (MSE)")
	assert.Contains(t, out, "HIGH is more volatile (higher Beta) compared to LOW.")
	assert.NotContains(t, out, "UNDEFINED_METRIC")
}

func TestWriteOutcome_UndefinedBeta(t *testing.T) {
	var buf bytes.Buffer
	writeOutcome(&buf, outcome(t, 1000, 1000, 1000, 1000, 1000, 1000, 1000))

	out := buf.String()
	assert.Contains(t, out, "n/a (zero_benchmark_variance)")
	assert.Contains(t, out, "UNDEFINED_METRIC: HIGH.beta: zero_benchmark_variance")
}

func TestFormatMetric(t *testing.T) {
	v := 0.0123456789
	assert.Equal(t, "0.012346", formatMetric(comparison.Metric{Value: &v}))
	assert.Equal(t, "n/a (insufficient_observations)",
		formatMetric(comparison.Metric{Reason: comparison.ReasonInsufficientObservations}))
}

func TestWriteSeries(t *testing.T) {
	var buf bytes.Buffer
	writeSeries(&buf, testingpkg.DailySeries(start, 10, 10.5))

	assert.Equal(t, "2024-01-01 10.0000\n2024-01-02 10.5000\n", buf.String())
}
