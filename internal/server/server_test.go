package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aristath/benchcompare/internal/clientdata"
	"github.com/aristath/benchcompare/internal/config"
	"github.com/aristath/benchcompare/internal/di"
	"github.com/aristath/benchcompare/internal/domain"
	testingpkg "github.com/aristath/benchcompare/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		DataDir:          t.TempDir(),
		Port:             8001,
		DevMode:          true,
		Benchmark:        config.DefaultBenchmark,
		MaxWindowDays:    3650,
		PriceCacheTTL:    6 * time.Hour,
		CacheCleanupCron: "0 0 3 * * *",
		YahooBaseURL:     "http://127.0.0.1:0",
		HTTPTimeout:      time.Second,
	}
	log := zerolog.Nop()

	container, err := di.Wire(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	return New(Config{
		Log:       log,
		Config:    cfg,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Container: container,
	})
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_CompareRejectsInvalidWindow(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/compare",
		strings.NewReader(`{"company1":"INFY.NS","company2":"TCS.NS","days":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, w.Header().Get("Content-Type"))
}

func TestServer_CacheCleanupRoute(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/cache/cleanup", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cache/cleanup", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_SystemStatusRoute(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/system/status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var response SystemStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 0, response.CacheEntries)
}

func TestServer_CacheDeleteRoute(t *testing.T) {
	s := newTestServer(t)
	repo := s.container.PriceCacheRepo
	day0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := domain.DateRange{Start: day0, End: day0.AddDate(0, 0, 30)}

	require.NoError(t, repo.Store(clientdata.PriceKey{Symbol: "^NSEI", Window: window}, testingpkg.DailySeries(day0, 1000, 1010), time.Hour))
	require.NoError(t, repo.Store(clientdata.PriceKey{Symbol: "TCS.NS", Window: window}, testingpkg.DailySeries(day0, 10, 11), time.Hour))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/cache/%5ENSEI", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["removed"])

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count, "other symbols stay cached")
}
