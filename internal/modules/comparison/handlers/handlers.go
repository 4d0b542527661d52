// Package handlers provides HTTP handlers for instrument comparisons.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/benchcompare/internal/modules/charts"
	"github.com/aristath/benchcompare/internal/modules/comparison"
	"github.com/aristath/benchcompare/internal/services"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// User-facing messages for fatal comparison failures.
const (
	msgEmptySeries      = "One or both stock tickers are invalid or no data is available for the given period."
	msgReturnCalcFailed = "Failed to calculate daily returns for one or more stocks."
	msgUpstream         = "Price data provider is unavailable, please try again later."
)

// Comparer runs a comparison request
type Comparer interface {
	Compare(ctx context.Context, req services.Request) (*services.Outcome, error)
}

// Handler handles comparison HTTP requests
type Handler struct {
	comparer Comparer
	log      zerolog.Logger
}

// NewHandler creates a new comparison handler
func NewHandler(comparer Comparer, log zerolog.Logger) *Handler {
	return &Handler{
		comparer: comparer,
		log:      log.With().Str("handler", "comparison").Logger(),
	}
}

// HandleCompare handles POST /api/compare (JSON or form body) and GET /api/compare (query string)
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	outcome, err := h.comparer.Compare(r.Context(), req)
	if err != nil {
		h.handleCompareError(w, err)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"window":    outcome.Window,
			"days":      outcome.Days,
			"benchmark": outcome.Benchmark,
			"result":    outcome.Result,
			"charts":    charts.BuildComparisonCharts(outcome.Result, outcome.Days),
		},
		"metadata": map[string]interface{}{
			"timestamp":     time.Now().Format(time.RFC3339),
			"comparison_id": uuid.NewString(),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleCompareError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrInvalidRequest) {
		h.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if failure, ok := comparison.AsFailure(err); ok {
		msg := msgReturnCalcFailed
		if failure.Reason == comparison.ReasonEmptySeries {
			msg = msgEmptySeries
		}
		h.writeError(w, http.StatusUnprocessableEntity, msg, map[string]interface{}{
			"reason": failure.Reason,
			"symbol": failure.Symbol,
		})
		return
	}

	if errors.Is(err, services.ErrUpstream) {
		h.log.Warn().Err(err).Msg("Price source failed")
		h.writeError(w, http.StatusBadGateway, msgUpstream, nil)
		return
	}

	h.log.Error().Err(err).Msg("Comparison failed")
	h.writeError(w, http.StatusInternalServerError, "Comparison failed", nil)
}

// parseRequest reads company1, company2 and days from a JSON body, a form body or the query string.
func parseRequest(r *http.Request) (services.Request, error) {
	var req services.Request

	if r.Method == http.MethodPost && isJSON(r.Header.Get("Content-Type")) {
		var body struct {
			Company1 string      `json:"company1"`
			Company2 string      `json:"company2"`
			Days     json.Number `json:"days"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return req, fmt.Errorf("invalid request body")
		}
		days, err := parseDays(body.Days.String())
		if err != nil {
			return req, err
		}
		return services.Request{SymbolA: body.Company1, SymbolB: body.Company2, WindowDays: days}, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("invalid form data")
	}
	days, err := parseDays(r.Form.Get("days"))
	if err != nil {
		return req, err
	}
	return services.Request{
		SymbolA:    r.Form.Get("company1"),
		SymbolB:    r.Form.Get("company2"),
		WindowDays: days,
	}, nil
}

func parseDays(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("days is required")
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("days must be an integer")
	}
	return days, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string, details map[string]interface{}) {
	body := map[string]interface{}{"error": msg}
	for k, v := range details {
		body[k] = v
	}
	h.writeJSON(w, status, body)
}

// writeJSON writes a JSON response. The body is encoded before the status is
// sent so an unencodable payload becomes a 500 instead of an empty 200.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.log.Error().Err(err).Msg("Failed to write JSON response")
	}
}
