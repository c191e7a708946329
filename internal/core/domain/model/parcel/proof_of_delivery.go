package parcel

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// ErrProofOfDeliveryIsNotConstructed is returned when a ProofOfDelivery was
// not created through one of its factory functions.
var ErrProofOfDeliveryIsNotConstructed = errors.New(
	"ProofOfDelivery must be created via NewProofOfDelivery or RestoreProofOfDelivery")

// ProofOfDelivery records the recipient's confirmation of receipt.
// It is created together with the delivered transition in the same
// transaction and is never modified afterwards.
type ProofOfDelivery struct {
	id          kernel.UUID
	parcelID    kernel.UUID
	recipientID kernel.UUID
	signature   string
	note        string
	confirmedAt time.Time

	isConstructed bool
}

// NewProofOfDelivery creates a proof-of-delivery record for a confirmation
// that just happened. Signature and note are optional.
func NewProofOfDelivery(
	parcelID kernel.UUID,
	recipientID kernel.UUID,
	signature string,
	note string,
	confirmedAt time.Time,
) (ProofOfDelivery, error) {
	return RestoreProofOfDelivery(kernel.NewUUID(), parcelID, recipientID, signature, note, confirmedAt)
}

// RestoreProofOfDelivery reconstructs a proof-of-delivery record from persistence.
func RestoreProofOfDelivery(
	id kernel.UUID,
	parcelID kernel.UUID,
	recipientID kernel.UUID,
	signature string,
	note string,
	confirmedAt time.Time,
) (ProofOfDelivery, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate(), recipientID.Validate()); err != nil {
		return ProofOfDelivery{}, err
	}

	if confirmedAt.IsZero() {
		return ProofOfDelivery{}, errs.NewValueIsRequiredError("confirmedAt")
	}

	return ProofOfDelivery{
		id:            id,
		parcelID:      parcelID,
		recipientID:   recipientID,
		signature:     signature,
		note:          note,
		confirmedAt:   confirmedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the record was created through a factory function.
func (p ProofOfDelivery) Validate() error {
	if !p.isConstructed {
		return ErrProofOfDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (p ProofOfDelivery) ID() kernel.UUID {
	return p.id
}

// ParcelID returns the identifier of the confirmed parcel.
func (p ProofOfDelivery) ParcelID() kernel.UUID {
	return p.parcelID
}

// Recipient returns the identifier of the confirming recipient.
func (p ProofOfDelivery) Recipient() kernel.UUID {
	return p.recipientID
}

// Signature returns the optional signature payload; empty when none was captured.
func (p ProofOfDelivery) Signature() string {
	return p.signature
}

// Note returns the optional confirmation note.
func (p ProofOfDelivery) Note() string {
	return p.note
}

// ConfirmedAt returns when the recipient confirmed receipt.
func (p ProofOfDelivery) ConfirmedAt() time.Time {
	return p.confirmedAt
}
