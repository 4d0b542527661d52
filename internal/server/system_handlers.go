package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/aristath/benchcompare/internal/scheduler"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// PriceCache is the slice of the price cache the maintenance endpoints need
type PriceCache interface {
	Count() (int, error)
	Delete(symbol string) (int64, error)
}

// SystemHandlers handles system-wide monitoring and maintenance endpoints
type SystemHandlers struct {
	cache      PriceCache
	cleanupJob scheduler.Job
	benchmark  string
	startedAt  time.Time
	log        zerolog.Logger
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, cache PriceCache, cleanupJob scheduler.Job, benchmark string) *SystemHandlers {
	return &SystemHandlers{
		cache:      cache,
		cleanupJob: cleanupJob,
		benchmark:  benchmark,
		startedAt:  time.Now(),
		log:        log.With().Str("handler", "system").Logger(),
	}
}

// SystemStatusResponse represents the system status payload
type SystemStatusResponse struct {
	Status        string  `json:"status"` // "healthy" or "degraded"
	Benchmark     string  `json:"benchmark"`
	CacheEntries  int     `json:"cache_entries"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float64 `json:"ram_percent"`
	Goroutines    int     `json:"goroutines"`
	UptimeSeconds int64   `json:"uptime_seconds"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	response := SystemStatusResponse{
		Status:        "healthy",
		Benchmark:     h.benchmark,
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
	}

	count, err := h.cache.Count()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to count cache entries")
		response.Status = "degraded"
	}
	response.CacheEntries = count

	response.CPUPercent, response.RAMPercent = h.getSystemStats()

	h.writeJSON(w, http.StatusOK, response)
}

// HandleCacheCleanup handles POST /api/cache/cleanup
func (h *SystemHandlers) HandleCacheCleanup(w http.ResponseWriter, r *http.Request) {
	before, _ := h.cache.Count()

	if err := h.cleanupJob.Run(); err != nil {
		h.log.Error().Err(err).Msg("Cache cleanup failed")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Cache cleanup failed"})
		return
	}

	after, _ := h.cache.Count()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"job":     h.cleanupJob.Name(),
		"removed": before - after,
	})
}

// HandleCacheDelete handles DELETE /api/cache/{symbol}
// The symbol is the provider ticker the windows were cached under, e.g. INFY.NS or ^NSEI.
func (h *SystemHandlers) HandleCacheDelete(w http.ResponseWriter, r *http.Request) {
	symbol, err := url.PathUnescape(chi.URLParam(r, "symbol"))
	symbol = strings.TrimSpace(symbol)
	if err != nil || symbol == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid symbol"})
		return
	}

	removed, err := h.cache.Delete(symbol)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Cache delete failed")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Cache delete failed"})
		return
	}

	h.log.Info().Str("symbol", symbol).Int64("removed", removed).Msg("Cleared cached price history")
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"symbol":  symbol,
		"removed": removed,
	})
}

// getSystemStats returns CPU and RAM usage percentages
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	// Get CPU percentage (100ms sample)
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
