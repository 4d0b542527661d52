package di

import (
	"fmt"

	"github.com/aristath/benchcompare/internal/clients/yahoo"
	"github.com/aristath/benchcompare/internal/config"
	"github.com/aristath/benchcompare/internal/services"
	"github.com/rs/zerolog"
)

// InitializeServices creates clients and services.
// Dependency order: Yahoo client -> price history (cache-first) -> comparison
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil || container.PriceCacheRepo == nil {
		return fmt.Errorf("container repositories not initialized")
	}

	container.YahooClient = yahoo.NewClient(cfg.YahooBaseURL, cfg.HTTPTimeout, log)

	container.PriceHistoryService = services.NewPriceHistoryService(
		container.YahooClient,
		container.PriceCacheRepo,
		cfg.PriceCacheTTL,
		log,
	)

	container.ComparisonService = services.NewComparisonService(
		container.PriceHistoryService,
		cfg,
		cfg.Benchmark,
		cfg.MaxWindowDays,
		log,
	)

	log.Debug().Str("benchmark", cfg.Benchmark).Msg("Services initialized")

	return nil
}
