package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/parcel"
)

// ErrParcelNotCancellable is returned when cancellation is requested for a
// parcel that has already entered the courier leg or a terminal status.
var ErrParcelNotCancellable = errors.New("parcel can only be cancelled while pending or assigned")

// CancelParcelCommandHandler handles customer/dispatcher cancellation.
//
// This flow is stricter than the transition table: the table also permits
// cancellation from picked_up and in_transit, but those are driver decisions
// made through the status update flow. Here only pending and assigned parcels
// may be cancelled.
type CancelParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewCancelParcelCommandHandler creates a handler for parcel cancellation.
func NewCancelParcelCommandHandler(uowFactory ParcelUoWFactory) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
// Returns the updated parcel on success. The driver binding, if any, is
// released as part of the cancellation.
func (h CancelParcelCommandHandler) Handle(ctx context.Context, cmd CancelParcelCommand) (*parcel.Parcel, error) {
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

	expectedStatus := aggregate.Status()
	expectedDriver := aggregate.Driver()

	if expectedStatus != parcel.Pending && expectedStatus != parcel.Assigned {
		return nil, ErrParcelNotCancellable
	}

	err = aggregate.TransitionTo(parcel.Cancelled, cmd.ActorID(), nil, cmd.Notes(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	err = parcelRepo.UpdateConditional(ctx, aggregate, expectedStatus, expectedDriver)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
