package domain

import "context"

// PriceSource provides daily adjusted close prices for a symbol over a date range.
// An unknown symbol or a range without trading data yields an empty series, not an error.
// Errors are reserved for transport or decoding failures.
type PriceSource interface {
	GetDailyPrices(ctx context.Context, symbol string, window DateRange) (PriceSeries, error)
}
