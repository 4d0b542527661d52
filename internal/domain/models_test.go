package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse(DateLayout, s)
	return t
}

func TestPricePoint_HasPrice(t *testing.T) {
	assert.True(t, PricePoint{Close: 10}.HasPrice())
	assert.True(t, PricePoint{Close: 0}.HasPrice())
	assert.False(t, PricePoint{Close: math.NaN()}.HasPrice())
	assert.False(t, PricePoint{Close: math.Inf(1)}.HasPrice())
	assert.False(t, PricePoint{Close: -1}.HasPrice())
}

func TestPriceSeries_StrictlyIncreasing(t *testing.T) {
	ordered := PriceSeries{{Date: day("2024-01-02")}, {Date: day("2024-01-03")}}
	assert.True(t, ordered.StrictlyIncreasing())

	duplicate := PriceSeries{{Date: day("2024-01-02")}, {Date: day("2024-01-02").Add(3 * time.Hour)}}
	assert.False(t, duplicate.StrictlyIncreasing())

	reversed := PriceSeries{{Date: day("2024-01-03")}, {Date: day("2024-01-02")}}
	assert.False(t, reversed.StrictlyIncreasing())

	assert.True(t, PriceSeries{}.StrictlyIncreasing())
}

func TestTrailingWindow(t *testing.T) {
	end := day("2024-03-31")
	w := TrailingWindow(end, 30)

	assert.Equal(t, day("2024-03-01"), w.Start)
	assert.Equal(t, end, w.End)
}
