// Package di provides dependency injection type definitions.
//
// Container holds every long-lived dependency of the application. It is built
// by Wire() and passed to the server and the CLI.
package di

import (
	"github.com/aristath/benchcompare/internal/clientdata"
	"github.com/aristath/benchcompare/internal/clients/yahoo"
	"github.com/aristath/benchcompare/internal/config"
	"github.com/aristath/benchcompare/internal/database"
	"github.com/aristath/benchcompare/internal/scheduler"
	"github.com/aristath/benchcompare/internal/services"
)

// Container holds all dependencies for the application.
type Container struct {
	Config *config.Config

	// Databases
	CacheDB *database.DB // prices.db - price history cache (ephemeral)

	// Repositories
	PriceCacheRepo *clientdata.Repository

	// Clients
	YahooClient *yahoo.Client

	// Services
	PriceHistoryService *services.PriceHistoryService
	ComparisonService   *services.ComparisonService

	// Background jobs
	Scheduler *scheduler.Scheduler
	Jobs      *JobInstances
}

// JobInstances holds job instances for manual triggering via API
type JobInstances struct {
	CacheCleanup scheduler.Job
}

// Close releases every resource held by the container.
func (c *Container) Close() error {
	if c.CacheDB != nil {
		return c.CacheDB.Close()
	}
	return nil
}
