package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aristath/benchcompare/internal/domain"
	"github.com/aristath/benchcompare/internal/modules/comparison"
	testingpkg "github.com/aristath/benchcompare/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type aliasResolver map[string]string

func (r aliasResolver) ResolveSymbol(symbol string) string {
	if v, ok := r[symbol]; ok {
		return v
	}
	return symbol
}

func fixtureSource() *testingpkg.StubPriceSource {
	return testingpkg.NewStubPriceSource(map[string]domain.PriceSeries{
		"HIGH":  testingpkg.DailySeries(historyStart, 100, 103, 99, 106, 101, 110, 104),
		"LOW":   testingpkg.DailySeries(historyStart, 50, 50.4, 50.1, 50.7, 50.3, 51.0, 50.6),
		"^NSEI": testingpkg.DailySeries(historyStart, 1000, 1015, 1002, 1024, 1010, 1040, 1021),
	})
}

func newComparisonService(source domain.PriceSource) *ComparisonService {
	svc := NewComparisonService(source, aliasResolver{"NIFTY": "^NSEI"}, "^NSEI", 365, quietLogger())
	svc.now = func() time.Time { return time.Date(2024, 1, 31, 15, 0, 0, 0, time.UTC) }
	return svc
}

func TestComparisonService_Compare(t *testing.T) {
	source := fixtureSource()
	svc := newComparisonService(source)

	out, err := svc.Compare(context.Background(), Request{SymbolA: " HIGH ", SymbolB: "LOW", WindowDays: 30})
	require.NoError(t, err)

	assert.Equal(t, "^NSEI", out.Benchmark)
	assert.Equal(t, 30, out.Days)
	assert.Equal(t, "2024-01-01", domain.DayKey(out.Window.Start))
	assert.Equal(t, "2024-01-31", domain.DayKey(out.Window.End))

	assert.Equal(t, comparison.VerdictA, out.Result.MoreVolatile)
	assert.Equal(t, "HIGH", out.Result.MoreVolatileSymbol())

	for _, sym := range []string{"HIGH", "LOW", "^NSEI"} {
		assert.Equal(t, 1, source.CallCount(sym))
	}
}

func TestComparisonService_ResolvesAliases(t *testing.T) {
	source := fixtureSource()
	svc := newComparisonService(source)

	out, err := svc.Compare(context.Background(), Request{SymbolA: "HIGH", SymbolB: "NIFTY", WindowDays: 30})
	require.NoError(t, err)
	assert.Equal(t, "^NSEI", out.Result.B.Symbol)
	assert.Equal(t, 2, source.CallCount("^NSEI"))
}

func TestComparisonService_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"missing first symbol", Request{SymbolB: "LOW", WindowDays: 30}},
		{"blank second symbol", Request{SymbolA: "HIGH", SymbolB: "   ", WindowDays: 30}},
		{"zero window", Request{SymbolA: "HIGH", SymbolB: "LOW"}},
		{"negative window", Request{SymbolA: "HIGH", SymbolB: "LOW", WindowDays: -5}},
		{"window too large", Request{SymbolA: "HIGH", SymbolB: "LOW", WindowDays: 366}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := fixtureSource()
			svc := newComparisonService(source)

			_, err := svc.Compare(context.Background(), tt.req)
			assert.True(t, errors.Is(err, ErrInvalidRequest), "got %v", err)
			assert.Zero(t, source.CallCount("HIGH"), "nothing is fetched for an invalid request")
		})
	}
}

func TestComparisonService_EmptySeriesFailure(t *testing.T) {
	svc := newComparisonService(fixtureSource())

	_, err := svc.Compare(context.Background(), Request{SymbolA: "HIGH", SymbolB: "UNKNOWN", WindowDays: 30})
	require.Error(t, err)
	assert.True(t, errors.Is(err, comparison.ErrEmptySeries))

	failure, ok := comparison.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "UNKNOWN", failure.Symbol)
}

func TestComparisonService_UpstreamError(t *testing.T) {
	source := fixtureSource()
	source.Errs["LOW"] = errors.New("timeout")
	svc := newComparisonService(source)

	_, err := svc.Compare(context.Background(), Request{SymbolA: "HIGH", SymbolB: "LOW", WindowDays: 30})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.Contains(t, err.Error(), "LOW")
}
