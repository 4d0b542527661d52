package di

import (
	"fmt"

	"github.com/aristath/benchcompare/internal/clientdata"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates the data access layer on top of the opened databases
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil || container.CacheDB == nil {
		return fmt.Errorf("container databases not initialized")
	}

	container.PriceCacheRepo = clientdata.NewRepository(container.CacheDB.Conn())
	log.Debug().Msg("Repositories initialized")

	return nil
}
