package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrReassignDriverCommandIsNotConstructed = errors.New(
	"ReassignDriverCommand must be created via NewReassignDriverCommand constructor",
)

// ReassignDriverCommand replaces the driver bound to an in-flight parcel.
// The parcel keeps its current status; only the binding and the assigned-at
// timestamp change.
type ReassignDriverCommand struct {
	parcelID    kernel.UUID
	newDriverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignDriverCommand creates a validated command to reassign a parcel.
func NewReassignDriverCommand(parcelID kernel.UUID, newDriverID kernel.UUID) (ReassignDriverCommand, error) {
	if err := errors.Join(
		parcelID.Validate(),
		newDriverID.Validate(),
	); err != nil {
		return ReassignDriverCommand{}, err
	}

	return ReassignDriverCommand{
		parcelID:    parcelID,
		newDriverID: newDriverID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// ParcelID returns the target parcel's identifier.
func (c *ReassignDriverCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// NewDriverID returns the replacement driver.
func (c *ReassignDriverCommand) NewDriverID() kernel.UUID {
	return c.newDriverID
}

// Validate ensures the command was created through the constructor.
func (c *ReassignDriverCommand) Validate() error {
	return c.guard.Validate(
		ErrReassignDriverCommandIsNotConstructed,
	)
}
