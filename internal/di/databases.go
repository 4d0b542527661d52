package di

import (
	"fmt"
	"path/filepath"

	"github.com/aristath/benchcompare/internal/config"
	"github.com/aristath/benchcompare/internal/database"
	"github.com/rs/zerolog"
)

// InitializeDatabases opens the price cache database and applies its schema
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{Config: cfg}

	// prices.db - cached price history, safe to delete at any time
	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "prices.db"),
		Profile: database.ProfileCache,
		Name:    "prices",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prices database: %w", err)
	}

	if err := cacheDB.Migrate(); err != nil {
		cacheDB.Close()
		return nil, fmt.Errorf("failed to migrate prices database: %w", err)
	}
	container.CacheDB = cacheDB

	log.Info().Str("path", cacheDB.Path()).Msg("Databases initialized")

	return container, nil
}
