package services

import (
	"context"
	"time"

	"github.com/aristath/benchcompare/internal/clientdata"
	"github.com/aristath/benchcompare/internal/domain"
	"github.com/rs/zerolog"
)

// PriceCache is the storage contract PriceHistoryService caches through.
type PriceCache interface {
	Get(key clientdata.PriceKey) (*clientdata.Entry, error)
	Store(key clientdata.PriceKey, series domain.PriceSeries, ttl time.Duration) error
}

// PriceHistoryService is a cache-first domain.PriceSource.
// Lookup order:
// 1. Fresh cache entry
// 2. Upstream fetch (stored on success)
// 3. Stale cache entry when the upstream fetch fails
type PriceHistoryService struct {
	upstream domain.PriceSource
	cache    PriceCache
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewPriceHistoryService creates a new price history service
func NewPriceHistoryService(upstream domain.PriceSource, cache PriceCache, ttl time.Duration, log zerolog.Logger) *PriceHistoryService {
	if ttl <= 0 {
		ttl = clientdata.TTLPriceHistory
	}
	return &PriceHistoryService{
		upstream: upstream,
		cache:    cache,
		ttl:      ttl,
		now:      time.Now,
		log:      log.With().Str("service", "price_history").Logger(),
	}
}

// GetDailyPrices implements domain.PriceSource.
func (s *PriceHistoryService) GetDailyPrices(ctx context.Context, symbol string, window domain.DateRange) (domain.PriceSeries, error) {
	key := clientdata.PriceKey{Symbol: symbol, Window: window}

	entry, err := s.cache.Get(key)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to read price cache")
		entry = nil
	}
	if entry != nil && entry.Fresh(s.now()) {
		s.log.Debug().Str("symbol", symbol).Int("points", len(entry.Series)).Msg("Price cache hit")
		return entry.Series, nil
	}

	series, err := s.upstream.GetDailyPrices(ctx, symbol, window)
	if err != nil {
		if entry != nil {
			s.log.Warn().
				Err(err).
				Str("symbol", symbol).
				Time("fetched_at", entry.FetchedAt).
				Msg("Upstream fetch failed, serving stale price history")
			return entry.Series, nil
		}
		return nil, err
	}

	// Empty results are not cached so a newly listed symbol is picked up on the next request.
	if len(series) > 0 {
		if err := s.cache.Store(key, series, s.ttlFor(window)); err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to store price history")
		}
	}

	return series, nil
}

func (s *PriceHistoryService) ttlFor(window domain.DateRange) time.Duration {
	if domain.DayKey(window.End) < domain.DayKey(s.now()) {
		return clientdata.TTLClosedWindow
	}
	return s.ttl
}
