package commands

import (
	"context"
)

// RecomputeDriverRatingCommandHandler rebuilds a driver's rating aggregate.
//
// The recomputation is a full scan of the driver's public reviews rather than
// an incremental adjustment, so the stored average and count converge to the
// truth even after out-of-order or lost review events.
type RecomputeDriverRatingCommandHandler struct {
	uowFactory RatingUoWFactory
}

// NewRecomputeDriverRatingCommandHandler creates a handler for rating recomputation.
func NewRecomputeDriverRatingCommandHandler(uowFactory RatingUoWFactory) RecomputeDriverRatingCommandHandler {
	return RecomputeDriverRatingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating recomputation command.
func (h RecomputeDriverRatingCommandHandler) Handle(ctx context.Context, cmd RecomputeDriverRatingCommand) error {
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

	driver, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	ratings, err := uow.ReviewRepository().GetPublicRatingsByReviewee(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = driver.RecalculateRating(ratings); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, driver); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
