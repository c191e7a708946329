package commands

import (
	"context"
)

// ReconcileDriverRatingsCommandHandler sweeps all drivers and rebuilds their
// rating aggregates from the review store in one transaction.
type ReconcileDriverRatingsCommandHandler struct {
	uowFactory RatingUoWFactory
}

// NewReconcileDriverRatingsCommandHandler creates a handler for the rating sweep.
func NewReconcileDriverRatingsCommandHandler(uowFactory RatingUoWFactory) ReconcileDriverRatingsCommandHandler {
	return ReconcileDriverRatingsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reconciliation command.
func (h ReconcileDriverRatingsCommandHandler) Handle(ctx context.Context, cmd ReconcileDriverRatingsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	reviewRepo := uow.ReviewRepository()

	drivers, err := driverRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, driver := range drivers {
		ratings, err := reviewRepo.GetPublicRatingsByReviewee(ctx, driver.ID())
		if err != nil {
			return err
		}

		if err = driver.RecalculateRating(ratings); err != nil {
			return err
		}

		if err = driverRepo.Update(ctx, driver); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
