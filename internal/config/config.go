// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBenchmark is the NIFTY 50 index, the benchmark the comparison was built around.
const DefaultBenchmark = "^NSEI"

// Config holds application configuration
type Config struct {
	DataDir          string // Base directory for the price cache database (always absolute)
	LogLevel         string
	Port             int
	DevMode          bool
	Benchmark        string            // Benchmark symbol every comparison is measured against
	MaxWindowDays    int               // Upper bound for the requested trailing window
	PriceCacheTTL    time.Duration     // Freshness of cached price history for open windows
	CacheCleanupCron string            // Cron spec (with seconds) for expired cache eviction
	YahooBaseURL     string            // Yahoo Finance chart API base URL
	HTTPTimeout      time.Duration     // Timeout for outbound data requests
	SymbolAliases    map[string]string // Friendly name -> provider ticker (e.g. NIFTY -> ^NSEI)
}

// aliasFile is the optional YAML file referenced by SYMBOL_ALIASES_FILE.
type aliasFile struct {
	Benchmark string            `yaml:"benchmark"`
	Aliases   map[string]string `yaml:"aliases"`
}

// Load reads configuration from environment variables and the optional alias file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("COMPARE_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:          absDataDir,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnvAsInt("COMPARE_PORT", 8001),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		Benchmark:        getEnv("BENCHMARK_SYMBOL", DefaultBenchmark),
		MaxWindowDays:    getEnvAsInt("MAX_WINDOW_DAYS", 3650),
		PriceCacheTTL:    getEnvAsDuration("PRICE_CACHE_TTL", 6*time.Hour),
		CacheCleanupCron: getEnv("CACHE_CLEANUP_CRON", "0 0 3 * * *"),
		YahooBaseURL:     getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
		HTTPTimeout:      getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		SymbolAliases:    map[string]string{},
	}

	if path := getEnv("SYMBOL_ALIASES_FILE", ""); path != "" {
		if err := cfg.loadAliases(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadAliases merges the YAML alias file into the configuration.
// A benchmark in the file only applies when BENCHMARK_SYMBOL is not set.
func (c *Config) loadAliases(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read symbol aliases file: %w", err)
	}

	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse symbol aliases file: %w", err)
	}

	for name, ticker := range file.Aliases {
		c.SymbolAliases[strings.ToUpper(strings.TrimSpace(name))] = strings.TrimSpace(ticker)
	}

	if file.Benchmark != "" && os.Getenv("BENCHMARK_SYMBOL") == "" {
		c.Benchmark = file.Benchmark
	}

	return nil
}

// ResolveSymbol maps a configured alias to its provider ticker; other symbols pass through trimmed.
func (c *Config) ResolveSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if ticker, ok := c.SymbolAliases[strings.ToUpper(symbol)]; ok {
		return ticker
	}
	return symbol
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.MaxWindowDays <= 0 {
		return fmt.Errorf("MAX_WINDOW_DAYS must be positive, got %d", c.MaxWindowDays)
	}
	if strings.TrimSpace(c.Benchmark) == "" {
		return fmt.Errorf("benchmark symbol must not be empty")
	}
	if c.PriceCacheTTL <= 0 {
		return fmt.Errorf("PRICE_CACHE_TTL must be positive, got %s", c.PriceCacheTTL)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
