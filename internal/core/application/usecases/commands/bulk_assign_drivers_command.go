package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

// MaxBulkAssignments bounds a single bulk assignment request.
// Larger batches must be split by the caller.
const MaxBulkAssignments = 100

var ErrBulkAssignDriversCommandIsNotConstructed = errors.New(
	"BulkAssignDriversCommand must be created via NewBulkAssignDriversCommand constructor",
)

// BulkAssignItem is one parcel/driver pairing inside a bulk request.
type BulkAssignItem struct {
	ParcelID kernel.UUID
	DriverID kernel.UUID
	Notes    string
}

// BulkAssignDriversCommand assigns drivers to a batch of parcels in one call.
// Each pairing succeeds or fails independently; the batch never rolls back
// completed assignments because one item failed.
type BulkAssignDriversCommand struct {
	items   []BulkAssignItem
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkAssignDriversCommand creates a validated bulk assignment command.
// The batch must contain between 1 and MaxBulkAssignments items.
func NewBulkAssignDriversCommand(items []BulkAssignItem, actorID kernel.UUID) (BulkAssignDriversCommand, error) {
	if err := actorID.Validate(); err != nil {
		return BulkAssignDriversCommand{}, err
	}

	if len(items) < 1 || len(items) > MaxBulkAssignments {
		return BulkAssignDriversCommand{}, errs.NewValueIsOutOfRangeError(
			"assignments", len(items), 1, MaxBulkAssignments)
	}

	for _, item := range items {
		if err := errors.Join(item.ParcelID.Validate(), item.DriverID.Validate()); err != nil {
			return BulkAssignDriversCommand{}, err
		}
	}

	return BulkAssignDriversCommand{
		items:   items,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Items returns the requested pairings in submission order.
func (c *BulkAssignDriversCommand) Items() []BulkAssignItem {
	return c.items
}

// ActorID returns the dispatching actor for history attribution.
func (c *BulkAssignDriversCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Validate ensures the command was created through the constructor.
func (c *BulkAssignDriversCommand) Validate() error {
	return c.guard.Validate(
		ErrBulkAssignDriversCommandIsNotConstructed,
	)
}
