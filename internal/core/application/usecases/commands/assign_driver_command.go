package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand binds a driver to a pending parcel.
// The parcel moves to assigned status and the binding is recorded in the
// status history, attributed to the dispatching actor.
type AssignDriverCommand struct {
	parcelID kernel.UUID
	driverID kernel.UUID
	actorID  kernel.UUID
	notes    string

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a validated command to assign a driver.
// Notes are optional free text stored on the history entry.
func NewAssignDriverCommand(
	parcelID kernel.UUID,
	driverID kernel.UUID,
	actorID kernel.UUID,
	notes string,
) (AssignDriverCommand, error) {
	if err := errors.Join(
		parcelID.Validate(),
		driverID.Validate(),
		actorID.Validate(),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		parcelID: parcelID,
		driverID: driverID,
		actorID:  actorID,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ParcelID returns the target parcel's identifier.
func (c *AssignDriverCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// DriverID returns the driver to bind.
func (c *AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// ActorID returns the dispatching actor for history attribution.
func (c *AssignDriverCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Notes returns the optional dispatch notes.
func (c *AssignDriverCommand) Notes() string {
	return c.notes
}

// Validate ensures the command was created through the constructor.
func (c *AssignDriverCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignDriverCommandIsNotConstructed,
	)
}
