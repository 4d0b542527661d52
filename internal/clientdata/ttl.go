package clientdata

import "time"

// TTL constants for cached price history.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// TTLPriceHistory applies to windows that end today and may still gain a bar.
	TTLPriceHistory = 6 * time.Hour
	// TTLClosedWindow applies to windows entirely in the past; adjusted closes only change on corporate actions.
	TTLClosedWindow = 7 * 24 * time.Hour
)
