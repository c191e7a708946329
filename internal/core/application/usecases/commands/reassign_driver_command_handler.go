package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

// ReassignDriverCommandHandler handles the business logic for replacing the
// driver on a parcel mid-delivery.
//
// The availability check and the conditional write mirror assignment: the
// write predicate covers both the status and the previously bound driver, so
// two concurrent reassignments cannot silently overwrite each other.
type ReassignDriverCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewReassignDriverCommandHandler creates a handler for driver reassignment.
func NewReassignDriverCommandHandler(uowFactory AssignmentUoWFactory) ReassignDriverCommandHandler {
	return ReassignDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the driver reassignment command.
// Returns the updated parcel on success.
func (h ReassignDriverCommandHandler) Handle(ctx context.Context, cmd ReassignDriverCommand) (*parcel.Parcel, error) {
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

	driver, err := uow.DriverRepository().Get(ctx, cmd.NewDriverID())
	if err != nil {
		return nil, err
	}

	if !driver.IsAssignable() {
		return nil, ErrDriverNotAvailable
	}

	parcelRepo := uow.ParcelRepository()

	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	expectedStatus := aggregate.Status()
	expectedDriver := aggregate.Driver()

	err = aggregate.Reassign(cmd.NewDriverID(), time.Now().UTC())
	if err != nil {
		if errors.Is(err, parcel.ErrNoDriverAssigned) || errors.Is(err, parcel.ErrParcelInTerminalStatus) {
			return nil, errors.Join(ErrParcelNotAssignable, err)
		}
		return nil, err
	}

	err = parcelRepo.UpdateConditional(ctx, aggregate, expectedStatus, expectedDriver)
	if err != nil {
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			return nil, errors.Join(ErrParcelNotAssignable, err)
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
