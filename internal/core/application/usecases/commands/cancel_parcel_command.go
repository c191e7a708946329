package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrCancelParcelCommandIsNotConstructed = errors.New(
	"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
)

// CancelParcelCommand cancels a parcel before the courier leg has started.
// Cancellation from later statuses belongs to the driver-facing status update
// flow, not to this command.
type CancelParcelCommand struct {
	parcelID kernel.UUID
	actorID  kernel.UUID
	notes    string

	guard guard.ConstructorGuard
}

// NewCancelParcelCommand creates a validated cancellation command.
func NewCancelParcelCommand(parcelID kernel.UUID, actorID kernel.UUID, notes string) (CancelParcelCommand, error) {
	if err := errors.Join(
		parcelID.Validate(),
		actorID.Validate(),
	); err != nil {
		return CancelParcelCommand{}, err
	}

	return CancelParcelCommand{
		parcelID: parcelID,
		actorID:  actorID,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ParcelID returns the target parcel's identifier.
func (c *CancelParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns the cancelling actor for history attribution.
func (c *CancelParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Notes returns the optional cancellation reason.
func (c *CancelParcelCommand) Notes() string {
	return c.notes
}

// Validate ensures the command was created through the constructor.
func (c *CancelParcelCommand) Validate() error {
	return c.guard.Validate(
		ErrCancelParcelCommandIsNotConstructed,
	)
}
