package commands

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/parcel"
)

// UpdateParcelStatusCommandHandler handles lifecycle status transitions.
//
// Legality is decided by the aggregate's transition table; this handler only
// orchestrates loading, the conditional write and the transaction. An illegal
// pair surfaces as *parcel.InvalidTransitionError, a lost write race as
// errs.ErrConcurrencyConflict, both unchanged for the transport layer to map.
type UpdateParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewUpdateParcelStatusCommandHandler creates a handler for status updates.
func NewUpdateParcelStatusCommandHandler(uowFactory ParcelUoWFactory) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update command.
// Returns the updated parcel on success.
func (h UpdateParcelStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateParcelStatusCommand,
) (*parcel.Parcel, error) {
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

	err = aggregate.TransitionTo(cmd.Target(), cmd.ActorID(), cmd.Location(), cmd.Notes(), time.Now().UTC())
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
