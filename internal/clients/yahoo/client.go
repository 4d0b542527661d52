// Package yahoo fetches daily price history from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/aristath/benchcompare/internal/domain"
	"github.com/rs/zerolog"
)

// Client is a Yahoo Finance chart API client
type Client struct {
	baseURL    string
	client     *http.Client
	maxRetries int
	backoff    time.Duration
	log        zerolog.Logger
}

// NewClient creates a new Yahoo Finance client
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		maxRetries: 3,
		backoff:    time.Second,
		log:        log.With().Str("client", "yahoo").Logger(),
	}
}

// GetYahooSymbol converts a broker-style symbol to Yahoo Finance format
// Examples:
// AAPL.US -> AAPL
// 7203.JP -> 7203.T (Toyota)
// OTE.GR -> OTE.AT (Athens)
// INFY.NS -> INFY.NS (unchanged)
func GetYahooSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	switch {
	case strings.HasSuffix(symbol, ".US"):
		return strings.TrimSuffix(symbol, ".US")
	case strings.HasSuffix(symbol, ".JP"):
		return strings.TrimSuffix(symbol, ".JP") + ".T"
	case strings.HasSuffix(symbol, ".GR"):
		return strings.TrimSuffix(symbol, ".GR") + ".AT"
	}

	return symbol
}

// chartResponse represents the response from the Yahoo Finance chart API
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				GMTOffset int64  `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// statusError is returned for non-200 responses that are not "no data".
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("yahoo: status %d, body: %s", e.status, e.body)
}

func (e *statusError) retryable() bool {
	return e.status == http.StatusTooManyRequests || e.status >= 500
}

// GetDailyPrices fetches daily adjusted closes for symbol within window (inclusive).
// An unknown symbol or a window without trading data returns an empty series.
func (c *Client) GetDailyPrices(ctx context.Context, symbol string, window domain.DateRange) (domain.PriceSeries, error) {
	yahooSymbol := GetYahooSymbol(symbol)
	if yahooSymbol == "" {
		return domain.PriceSeries{}, nil
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		series, err := c.fetchChart(ctx, yahooSymbol, window)
		if err == nil {
			c.log.Debug().
				Str("symbol", yahooSymbol).
				Int("points", len(series)).
				Msg("Fetched daily prices")
			return series, nil
		}
		lastErr = err

		var se *statusError
		if !errors.As(err, &se) || !se.retryable() || attempt == c.maxRetries-1 {
			break
		}

		wait := c.backoff * time.Duration(1<<uint(attempt))
		c.log.Warn().Err(err).Str("symbol", yahooSymbol).Int("attempt", attempt+1).Dur("wait", wait).Msg("Retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, fmt.Errorf("failed to get daily prices for %s: %w", yahooSymbol, lastErr)
}

func (c *Client) fetchChart(ctx context.Context, symbol string, window domain.DateRange) (domain.PriceSeries, error) {
	params := url.Values{}
	params.Set("period1", fmt.Sprintf("%d", startOfDay(window.Start).Unix()))
	params.Set("period2", fmt.Sprintf("%d", startOfDay(window.End).AddDate(0, 0, 1).Unix()))
	params.Set("interval", "1d")
	params.Set("includeAdjustedClose", "true")
	params.Set("events", "div,split")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}

	var chart chartResponse
	decodeErr := json.Unmarshal(body, &chart)

	// Unknown symbols come back as 404 with a "Not Found" chart error.
	if resp.StatusCode == http.StatusNotFound {
		if decodeErr == nil && chart.Chart.Error != nil {
			c.log.Info().Str("symbol", symbol).Str("reason", chart.Chart.Error.Description).Msg("No data for symbol")
		}
		return domain.PriceSeries{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode, body: truncate(string(body), 200)}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("yahoo decode: %w", decodeErr)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return domain.PriceSeries{}, nil
		}
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}

	return toSeries(chart, window), nil
}

// toSeries converts the chart payload to a series ordered by day with one point per day.
// Adjusted close is preferred; close is the fallback. Null bars (holidays) are skipped.
func toSeries(chart chartResponse, window domain.DateRange) domain.PriceSeries {
	if len(chart.Chart.Result) == 0 {
		return domain.PriceSeries{}
	}

	result := chart.Chart.Result[0]
	var closes, adjCloses []*float64
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	if len(result.Indicators.AdjClose) > 0 {
		adjCloses = result.Indicators.AdjClose[0].AdjClose
	}

	first := domain.DayKey(window.Start)
	last := domain.DayKey(window.End)

	byDay := make(map[string]domain.PricePoint, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		price := pick(adjCloses, i)
		if price == nil {
			price = pick(closes, i)
		}
		if price == nil || math.IsNaN(*price) || *price < 0 {
			continue
		}

		// Exchange-local calendar day.
		date := startOfDay(time.Unix(ts+result.Meta.GMTOffset, 0).UTC())
		key := domain.DayKey(date)
		if key < first || key > last {
			continue
		}
		byDay[key] = domain.PricePoint{Date: date, Close: *price}
	}

	series := make(domain.PriceSeries, 0, len(byDay))
	for _, p := range byDay {
		series = append(series, p)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	return series
}

func pick(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
