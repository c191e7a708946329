package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand records the recipient's confirmation of receipt.
// It moves the parcel from delivered_to_recipient to the terminal delivered
// status and creates a proof-of-delivery record in the same transaction.
type ConfirmDeliveryCommand struct {
	parcelID  kernel.UUID
	actorID   kernel.UUID
	signature string
	notes     string

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a validated confirmation command.
// Signature is an optional opaque proof artifact (e.g. a signature image
// reference); notes are optional free text.
func NewConfirmDeliveryCommand(
	parcelID kernel.UUID,
	actorID kernel.UUID,
	signature string,
	notes string,
) (ConfirmDeliveryCommand, error) {
	if err := errors.Join(
		parcelID.Validate(),
		actorID.Validate(),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		parcelID:  parcelID,
		actorID:   actorID,
		signature: signature,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// ParcelID returns the target parcel's identifier.
func (c *ConfirmDeliveryCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns the actor claiming to be the recipient.
func (c *ConfirmDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Signature returns the optional proof artifact.
func (c *ConfirmDeliveryCommand) Signature() string {
	return c.signature
}

// Notes returns the optional confirmation notes.
func (c *ConfirmDeliveryCommand) Notes() string {
	return c.notes
}

// Validate ensures the command was created through the constructor.
func (c *ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(
		ErrConfirmDeliveryCommandIsNotConstructed,
	)
}
