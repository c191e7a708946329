package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand submits a new delivery request. The parcel starts in
// pending status with a freshly generated tracking number.
//
// Sender and recipient references are optional: a parcel may be submitted
// anonymously, and the recipient may be attached later by the surrounding
// CRUD layer.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(parcelID, &senderID, &recipientID)
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct {
	parcelID    kernel.UUID
	senderID    *kernel.UUID
	recipientID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a validated command to submit a parcel.
// The parcel ID is supplied by the caller so retries stay idempotent.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	senderID *kernel.UUID,
	recipientID *kernel.UUID,
) (CreateParcelCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return CreateParcelCommand{}, err
	}

	if senderID != nil {
		if err := senderID.Validate(); err != nil {
			return CreateParcelCommand{}, err
		}
	}

	if recipientID != nil {
		if err := recipientID.Validate(); err != nil {
			return CreateParcelCommand{}, err
		}
	}

	return CreateParcelCommand{
		parcelID:    parcelID,
		senderID:    senderID,
		recipientID: recipientID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// ParcelID returns the identifier for the new parcel.
func (c *CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Sender returns the optional sender reference.
func (c *CreateParcelCommand) Sender() *kernel.UUID {
	return c.senderID
}

// Recipient returns the optional recipient reference.
func (c *CreateParcelCommand) Recipient() *kernel.UUID {
	return c.recipientID
}

// Validate ensures the command was created through the constructor.
func (c *CreateParcelCommand) Validate() error {
	return c.guard.Validate(
		ErrCreateParcelCommandIsNotConstructed,
	)
}
