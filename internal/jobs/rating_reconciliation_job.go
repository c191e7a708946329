package jobs

import (
	"context"
	"log/slog"

	"parcels/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RatingReconciliationJob periodically recomputes the rating aggregate of
// every driver from the stored reviews. Acts as a safety net for aggregates
// that drifted because a recompute after a review change was missed.
type RatingReconciliationJob struct {
	handler commands.ReconcileDriverRatingsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRatingReconciliationJob creates a new job for reconciling driver ratings.
// Uses ReconcileDriverRatingsCommandHandler to sweep all drivers once an hour.
func NewRatingReconciliationJob(handler commands.ReconcileDriverRatingsCommandHandler, logger *slog.Logger) *RatingReconciliationJob {
	return &RatingReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "rating_reconciliation_job"),
	}
}

// Start begins the rating reconciliation job to run at the top of every hour.
func (j *RatingReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReconcileDriverRatingsCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Rating reconciliation job failed", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Rating reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rating reconciliation job started (running hourly)")
	return nil
}

// Stop stops the rating reconciliation job.
func (j *RatingReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rating reconciliation job stopped")
}
