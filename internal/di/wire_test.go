package di

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aristath/benchcompare/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:          t.TempDir(),
		Port:             8001,
		Benchmark:        config.DefaultBenchmark,
		MaxWindowDays:    3650,
		PriceCacheTTL:    6 * time.Hour,
		CacheCleanupCron: "0 0 3 * * *",
		YahooBaseURL:     "http://127.0.0.1:0",
		HTTPTimeout:      time.Second,
	}
}

func TestWire(t *testing.T) {
	cfg := testConfig(t)

	container, err := Wire(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, container)
	t.Cleanup(func() { container.Close() })

	assert.NotNil(t, container.CacheDB)
	assert.NotNil(t, container.PriceCacheRepo)
	assert.NotNil(t, container.YahooClient)
	assert.NotNil(t, container.PriceHistoryService)
	assert.NotNil(t, container.ComparisonService)
	assert.NotNil(t, container.Scheduler)
	require.NotNil(t, container.Jobs)
	assert.Equal(t, "price_cache_cleanup", container.Jobs.CacheCleanup.Name())
	assert.Equal(t, []string{"price_cache_cleanup"}, container.Scheduler.Jobs())
	assert.Equal(t, config.DefaultBenchmark, container.ComparisonService.Benchmark())

	assert.FileExists(t, filepath.Join(cfg.DataDir, "prices.db"))
}

func TestWire_InvalidCronFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.CacheCleanupCron = "every now and then"

	container, err := Wire(cfg, zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, container)
}

func TestInitializeRepositories_RequiresDatabases(t *testing.T) {
	assert.Error(t, InitializeRepositories(&Container{}, zerolog.Nop()))
	assert.Error(t, InitializeRepositories(nil, zerolog.Nop()))
}

func TestInitializeServices_RequiresRepositories(t *testing.T) {
	assert.Error(t, InitializeServices(&Container{}, testConfig(t), zerolog.Nop()))
}
