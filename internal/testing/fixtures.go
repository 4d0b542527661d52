package testing

import (
	"context"
	"sync"
	"time"

	"github.com/aristath/benchcompare/internal/domain"
)

// DailySeries builds a price series on consecutive calendar days starting at start.
func DailySeries(start time.Time, closes ...float64) domain.PriceSeries {
	series := make(domain.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = domain.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return series
}

// StubPriceSource is an in-memory domain.PriceSource keyed by symbol.
type StubPriceSource struct {
	mu     sync.Mutex
	Series map[string]domain.PriceSeries
	Errs   map[string]error
	Calls  map[string]int
}

// NewStubPriceSource creates a stub serving the given series.
func NewStubPriceSource(series map[string]domain.PriceSeries) *StubPriceSource {
	return &StubPriceSource{
		Series: series,
		Errs:   map[string]error{},
		Calls:  map[string]int{},
	}
}

// GetDailyPrices implements domain.PriceSource.
func (s *StubPriceSource) GetDailyPrices(_ context.Context, symbol string, _ domain.DateRange) (domain.PriceSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls[symbol]++
	if err := s.Errs[symbol]; err != nil {
		return nil, err
	}
	return s.Series[symbol], nil
}

// CallCount returns how many times symbol was requested.
func (s *StubPriceSource) CallCount(symbol string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[symbol]
}
