package commands

import (
	"errors"

	"parcels/internal/pkg/guard"
)

var ErrReconcileDriverRatingsCommandIsNotConstructed = errors.New(
	"ReconcileDriverRatingsCommand must be created via NewReconcileDriverRatingsCommand constructor",
)

// ReconcileDriverRatingsCommand rebuilds the rating aggregates of every
// driver. Run periodically as a safety net against drift between stored
// aggregates and the underlying reviews.
type ReconcileDriverRatingsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileDriverRatingsCommand creates a validated reconciliation command.
func NewReconcileDriverRatingsCommand() (ReconcileDriverRatingsCommand, error) {
	return ReconcileDriverRatingsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *ReconcileDriverRatingsCommand) Validate() error {
	return c.guard.Validate(
		ErrReconcileDriverRatingsCommandIsNotConstructed,
	)
}
