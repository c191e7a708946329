// Package jobs provides scheduled background tasks for the parcel system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the parcel service.
//
// # Available Jobs
//
// 1. RatingReconciliationJob - Runs hourly to recompute every driver's rating
// aggregate from the stored reviews
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileRatingsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation job uses the cron expression "0 0 * * * *" which means it
// runs at the top of every hour. Ratings are recomputed synchronously after a
// review change; the hourly sweep only repairs aggregates that drifted.
//
// # Error Handling
//
// Reconciliation failures are logged and retried on the next tick; a partial
// sweep rolls back as a whole because it runs in a single unit of work.
package jobs
