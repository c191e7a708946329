package commands

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
)

// CreateParcelCommandHandler handles the business logic for parcel submission.
// Generates a unique tracking number and persists the parcel in pending status.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory)
//	cmd, _ := NewCreateParcelCommand(kernel.NewUUID(), &senderID, &recipientID)
//
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrTrackingNumberGenerationExhausted) {
//	    // uniqueness probe is misbehaving; surface as a server error
//	}
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewCreateParcelCommandHandler creates a handler for parcel submission.
// Requires a ParcelUoWFactory for transactional persistence.
func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the parcel submission command.
// The tracking number generator probes persisted tracking numbers through the
// same repository the parcel is written with, so the uniqueness check and the
// insert share one transaction.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
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

	trackingNumber, err := services.NewTrackingNumberGenerator(parcelRepo).Generate(ctx)
	if err != nil {
		return nil, err
	}

	aggregate, err := parcel.NewParcel(cmd.ParcelID(), trackingNumber, cmd.Sender(), cmd.Recipient(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = parcelRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
