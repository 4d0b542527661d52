package di

import (
	"fmt"

	"github.com/aristath/benchcompare/internal/clientdata"
	"github.com/aristath/benchcompare/internal/config"
	"github.com/aristath/benchcompare/internal/scheduler"
	"github.com/rs/zerolog"
)

// RegisterJobs creates the background jobs and schedules them.
// Returns JobInstances for manual triggering via API
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	instances := &JobInstances{
		CacheCleanup: clientdata.NewCleanupJob(container.PriceCacheRepo, log),
	}

	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.CacheCleanupCron, instances.CacheCleanup); err != nil {
		return nil, fmt.Errorf("failed to register cache cleanup job: %w", err)
	}

	container.Scheduler = sched
	container.Jobs = instances

	return instances, nil
}
