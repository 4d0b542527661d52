package comparison

import (
	"math"
	"testing"

	"github.com/aristath/benchcompare/internal/domain"
	"github.com/aristath/benchcompare/pkg/formulas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyReturns(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   []*float64
	}{
		{name: "single price", prices: []float64{100}, want: []*float64{nil}},
		{name: "compounding ten percent", prices: []float64{100, 110, 121}, want: []*float64{nil, f(0.10), f(0.10)}},
		{name: "negative move", prices: []float64{100, 90}, want: []*float64{nil, f(-0.10)}},
		{name: "zero prior price is missing", prices: []float64{100, 0, 110}, want: []*float64{nil, f(-1), nil}},
		{name: "absent price is missing on both sides", prices: []float64{100, math.NaN(), 110, 121}, want: []*float64{nil, nil, nil, f(0.10)}},
		{name: "flat", prices: []float64{50, 50, 50}, want: []*float64{nil, f(0), f(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyReturns(dailySeries(tt.prices...))
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				if w == nil {
					assert.Nil(t, got[i].Return, "index %d should be missing", i)
					continue
				}
				require.NotNil(t, got[i].Return, "index %d should be defined", i)
				assert.InDelta(t, *w, *got[i].Return, 1e-12)
			}
		})
	}
}

func TestDailyReturns_LengthAndLeadingMissing(t *testing.T) {
	for n := 1; n <= 20; n++ {
		prices := make([]float64, n)
		for i := range prices {
			prices[i] = 100 + float64(i%5)*3.5
		}

		returns := DailyReturns(dailySeries(prices...))
		require.Len(t, returns, n)
		assert.Nil(t, returns[0].Return)
	}
}

func TestDailyReturns_RoundTrip(t *testing.T) {
	prices := dailySeries(101.3, 99.8, 104.25, 104.25, 97.1, 120.6, 118.02)
	returns := DailyReturns(prices)

	for i := 1; i < len(prices); i++ {
		require.NotNil(t, returns[i].Return)
		rebuilt := prices[i-1].Close * (1 + *returns[i].Return)
		assert.InDelta(t, prices[i].Close, rebuilt, 1e-9)
	}
}

func TestDailyReturns_KeepsDates(t *testing.T) {
	prices := dailySeries(1, 2, 3)
	returns := DailyReturns(prices)
	for i := range prices {
		assert.Equal(t, prices[i].Date, returns[i].Date)
	}
}

func cumulativeValue(t *testing.T, p CumulativePoint) float64 {
	t.Helper()
	require.NotNil(t, p.Value, "cumulative value on %s should be defined", p.Date)
	return *p.Value
}

func TestCumulativeReturns(t *testing.T) {
	cum := CumulativeReturns(DailyReturns(dailySeries(100, 110, 121)))

	require.Len(t, cum, 3)
	assert.Equal(t, 0.0, cumulativeValue(t, cum[0]), "leading missing return compounds as the empty product")
	assert.InDelta(t, 0.10, cumulativeValue(t, cum[1]), 1e-12)
	assert.InDelta(t, 0.21, cumulativeValue(t, cum[2]), 1e-12)
}

func TestCumulativeReturns_SkipsMissing(t *testing.T) {
	cum := CumulativeReturns(returnSeries(nil, f(0.5), nil, f(-0.5)))

	assert.InDelta(t, 0.0, cumulativeValue(t, cum[0]), 1e-12)
	assert.InDelta(t, 0.5, cumulativeValue(t, cum[1]), 1e-12)
	assert.InDelta(t, 0.5, cumulativeValue(t, cum[2]), 1e-12, "missing return leaves the level unchanged")
	assert.InDelta(t, -0.25, cumulativeValue(t, cum[3]), 1e-12)
}

func TestCumulativeReturns_MatchesPriceRatio(t *testing.T) {
	prices := dailySeries(80, 84, 79.5, 91, 88.2)
	cum := CumulativeReturns(DailyReturns(prices))

	last := cumulativeValue(t, cum[len(cum)-1])
	assert.InDelta(t, prices[len(prices)-1].Close/prices[0].Close-1, last, 1e-12)
}

func TestCumulativeReturns_OverflowIsUndefined(t *testing.T) {
	// Every price is finite and non-negative, but the compounded level overflows
	// on day 2 and a later -100% return would turn it into NaN.
	prices := dailySeries(1e-300, 1, 1e300, 1e300, 0, 0, 0)
	returns := DailyReturns(prices)
	for _, p := range returns {
		if p.Return != nil {
			require.True(t, formulas.IsFinite(*p.Return))
		}
	}

	cum := CumulativeReturns(returns)
	require.Len(t, cum, len(prices))

	assert.Equal(t, 0.0, cumulativeValue(t, cum[0]))
	assert.InDelta(t, 1e300, cumulativeValue(t, cum[1]), 1e286)
	for i := 2; i < len(cum); i++ {
		assert.Nil(t, cum[i].Value, "index %d should be undefined once the level overflows", i)
		assert.Equal(t, prices[i].Date, cum[i].Date)
	}
}

func TestDailyReturns_EmptySeries(t *testing.T) {
	assert.Empty(t, DailyReturns(domain.PriceSeries{}))
	assert.Empty(t, CumulativeReturns(ReturnSeries{}))
}
