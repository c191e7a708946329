package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
	"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
)

// UpdateParcelStatusCommand moves a parcel along its lifecycle: assigned ->
// picked_up -> in_transit -> delivered_to_recipient, or into cancelled where
// the transition table allows it.
//
// The delivered status is deliberately not reachable through this command;
// recipient confirmation has its own command so the recipient check cannot be
// bypassed.
type UpdateParcelStatusCommand struct {
	parcelID kernel.UUID
	target   parcel.Status
	actorID  kernel.UUID
	location *kernel.GeoPoint
	notes    string

	guard guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand creates a validated status update command.
// Location is an optional GPS fix recorded on the history entry.
func NewUpdateParcelStatusCommand(
	parcelID kernel.UUID,
	target parcel.Status,
	actorID kernel.UUID,
	location *kernel.GeoPoint,
	notes string,
) (UpdateParcelStatusCommand, error) {
	if err := errors.Join(
		parcelID.Validate(),
		target.Validate(),
		actorID.Validate(),
	); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	if target == parcel.Delivered {
		return UpdateParcelStatusCommand{}, errs.NewValueIsInvalidError("status")
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return UpdateParcelStatusCommand{}, err
		}
	}

	return UpdateParcelStatusCommand{
		parcelID: parcelID,
		target:   target,
		actorID:  actorID,
		location: location,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ParcelID returns the target parcel's identifier.
func (c *UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Target returns the requested status.
func (c *UpdateParcelStatusCommand) Target() parcel.Status {
	return c.target
}

// ActorID returns the actor performing the update.
func (c *UpdateParcelStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Location returns the optional GPS fix.
func (c *UpdateParcelStatusCommand) Location() *kernel.GeoPoint {
	return c.location
}

// Notes returns the optional free-text notes.
func (c *UpdateParcelStatusCommand) Notes() string {
	return c.notes
}

// Validate ensures the command was created through the constructor.
func (c *UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(
		ErrUpdateParcelStatusCommandIsNotConstructed,
	)
}
