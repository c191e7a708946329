package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrRecomputeDriverRatingCommandIsNotConstructed = errors.New(
	"RecomputeDriverRatingCommand must be created via NewRecomputeDriverRatingCommand constructor",
)

// RecomputeDriverRatingCommand rebuilds one driver's rating aggregate from
// all public reviews about them. Triggered whenever a review affecting the
// driver is created, edited, hidden or deleted.
type RecomputeDriverRatingCommand struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecomputeDriverRatingCommand creates a validated recompute command.
func NewRecomputeDriverRatingCommand(driverID kernel.UUID) (RecomputeDriverRatingCommand, error) {
	if err := driverID.Validate(); err != nil {
		return RecomputeDriverRatingCommand{}, err
	}

	return RecomputeDriverRatingCommand{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the driver whose rating is recomputed.
func (c *RecomputeDriverRatingCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Validate ensures the command was created through the constructor.
func (c *RecomputeDriverRatingCommand) Validate() error {
	return c.guard.Validate(
		ErrRecomputeDriverRatingCommandIsNotConstructed,
	)
}
