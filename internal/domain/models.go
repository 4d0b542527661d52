// Package domain provides the core domain models shared by the comparison engine
// and its collaborators.
package domain

import (
	"math"
	"time"
)

// DateLayout is the calendar-day format used for keys and JSON payloads.
const DateLayout = "2006-01-02"

// PricePoint is one adjusted close observation for a calendar day.
// A NaN Close means the day has no trading data.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// HasPrice reports whether the point carries a usable price.
func (p PricePoint) HasPrice() bool {
	return !math.IsNaN(p.Close) && !math.IsInf(p.Close, 0) && p.Close >= 0
}

// DayKey returns the calendar-day key of the point.
func (p PricePoint) DayKey() string {
	return DayKey(p.Date)
}

// PriceSeries is an ordered (strictly increasing by date) sequence of prices for one symbol.
// The comparison engine treats it as read-only input.
type PriceSeries []PricePoint

// StrictlyIncreasing reports whether every date is on a later calendar day than the previous one.
func (s PriceSeries) StrictlyIncreasing() bool {
	for i := 1; i < len(s); i++ {
		if DayKey(s[i].Date) <= DayKey(s[i-1].Date) {
			return false
		}
	}
	return true
}

// DayKey normalises a timestamp to its UTC calendar day.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TrailingWindow returns the range covering the last days calendar days up to end.
func TrailingWindow(end time.Time, days int) DateRange {
	return DateRange{
		Start: end.AddDate(0, 0, -days),
		End:   end,
	}
}
