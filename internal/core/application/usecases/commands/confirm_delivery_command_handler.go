package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/parcel"
)

// ErrActorIsNotRecipient is returned when someone other than the parcel's
// recipient attempts to confirm the delivery.
var ErrActorIsNotRecipient = errors.New("delivery can only be confirmed by the parcel's recipient")

// ConfirmDeliveryCommandHandler handles recipient confirmation of receipt.
//
// The recipient check lives here rather than in the aggregate: the state
// machine stays actor-agnostic and this handler is the single entry point to
// the delivered status. The proof-of-delivery record is written in the same
// transaction as the status change, so one never exists without the other.
type ConfirmDeliveryCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(uowFactory ParcelUoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery confirmation command.
// Returns the updated parcel on success.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	recipientID := aggregate.Recipient()
	actorID := cmd.ActorID()
	if recipientID == nil || !recipientID.IsEqual(actorID) {
		return nil, ErrActorIsNotRecipient
	}

	expectedStatus := aggregate.Status()
	expectedDriver := aggregate.Driver()
	now := time.Now().UTC()

	err = aggregate.ConfirmDelivery(actorID, cmd.Notes(), now)
	if err != nil {
		return nil, err
	}

	proof, err := parcel.NewProofOfDelivery(aggregate.ID(), actorID, cmd.Signature(), cmd.Notes(), now)
	if err != nil {
		return nil, err
	}

	err = parcelRepo.UpdateConditional(ctx, aggregate, expectedStatus, expectedDriver)
	if err != nil {
		return nil, err
	}

	if err = parcelRepo.AddProofOfDelivery(ctx, proof); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
