// Package clientdata provides persistent caching for price history fetched from
// external data providers. Series are stored as msgpack blobs with expiration
// timestamps for cache-first behavior.
package clientdata

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/benchcompare/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// Table is the cache table name, used in cleanup reporting.
const Table = "price_history"

// PriceKey identifies one cached request.
type PriceKey struct {
	Symbol string
	Window domain.DateRange
}

// String returns the primary key stored in the cache table.
func (k PriceKey) String() string {
	return fmt.Sprintf("%s|%s|%s", k.Symbol, domain.DayKey(k.Window.Start), domain.DayKey(k.Window.End))
}

// cachedPoint is the on-disk form of a price point.
type cachedPoint struct {
	Date  int64   `msgpack:"d"`
	Close float64 `msgpack:"c"`
}

// Entry is a cached series with its freshness information.
type Entry struct {
	Series    domain.PriceSeries
	FetchedAt time.Time
	ExpiresAt time.Time
}

// Fresh reports whether the entry has not yet expired at now.
func (e *Entry) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// Repository provides cache operations for price history.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository creates a new price history cache repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Store saves a series with expiration = now + ttl, replacing any previous entry.
func (r *Repository) Store(key PriceKey, series domain.PriceSeries, ttl time.Duration) error {
	points := make([]cachedPoint, len(series))
	for i, p := range series {
		points[i] = cachedPoint{Date: p.Date.Unix(), Close: p.Close}
	}

	payload, err := msgpack.Marshal(points)
	if err != nil {
		return fmt.Errorf("failed to encode price series: %w", err)
	}

	now := r.now()
	_, err = r.db.Exec(`
		INSERT OR REPLACE INTO price_history
			(cache_key, symbol, start_date, end_date, points, payload, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		key.String(),
		key.Symbol,
		domain.DayKey(key.Window.Start),
		domain.DayKey(key.Window.End),
		len(series),
		payload,
		now.Unix(),
		now.Add(ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store price history for %s: %w", key.Symbol, err)
	}

	return nil
}

// Get returns the cached entry regardless of expiration status.
// Returns nil, nil if the key doesn't exist.
func (r *Repository) Get(key PriceKey) (*Entry, error) {
	var (
		payload   []byte
		fetchedAt int64
		expiresAt int64
	)
	err := r.db.QueryRow(
		`SELECT payload, fetched_at, expires_at FROM price_history WHERE cache_key = ?`,
		key.String(),
	).Scan(&payload, &fetchedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price history for %s: %w", key.Symbol, err)
	}

	var points []cachedPoint
	if err := msgpack.Unmarshal(payload, &points); err != nil {
		return nil, fmt.Errorf("failed to decode price history for %s: %w", key.Symbol, err)
	}

	series := make(domain.PriceSeries, len(points))
	for i, p := range points {
		series[i] = domain.PricePoint{Date: time.Unix(p.Date, 0).UTC(), Close: p.Close}
	}

	return &Entry{
		Series:    series,
		FetchedAt: time.Unix(fetchedAt, 0),
		ExpiresAt: time.Unix(expiresAt, 0),
	}, nil
}

// Delete removes every cached window for a symbol.
func (r *Repository) Delete(symbol string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM price_history WHERE symbol = ?`, symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to delete price history for %s: %w", symbol, err)
	}
	return result.RowsAffected()
}

// DeleteExpired removes all rows where expires_at < now.
// Returns the number of rows deleted.
func (r *Repository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM price_history WHERE expires_at < ?`, r.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired from %s: %w", Table, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for %s: %w", Table, err)
	}

	return deleted, nil
}

// Count returns the number of cached windows.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM price_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", Table, err)
	}
	return n, nil
}
