package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

var (
	// ErrDriverNotAvailable is returned when the requested driver exists but
	// cannot take new work (inactive, unavailable or removed).
	ErrDriverNotAvailable = errors.New("driver is not available for assignment")

	// ErrParcelNotAssignable is returned when the parcel's current state does
	// not admit the requested (re)assignment, including the case where a
	// concurrent request won the race for the same parcel.
	ErrParcelNotAssignable = errors.New("parcel is not assignable in its current state")
)

// AssignDriverCommandHandler handles the business logic for driver assignment.
//
// The happy path:
//  1. Load the driver and check availability
//  2. Load the parcel and apply the pending -> assigned transition
//  3. Write back with a predicate on the observed status and driver binding
//
// Step 3 makes the assignment race-safe: if two requests assign the same
// parcel concurrently, one write matches zero rows and loses with
// ErrParcelNotAssignable while the winner's history entry commits atomically
// with the status change.
type AssignDriverCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(uowFactory AssignmentUoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the driver assignment command.
// Returns the updated parcel on success.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*parcel.Parcel, error) {
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

	driver, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
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

	err = aggregate.Assign(cmd.DriverID(), cmd.ActorID(), cmd.Notes(), time.Now().UTC())
	if err != nil {
		var transitionErr *parcel.InvalidTransitionError
		if errors.Is(err, parcel.ErrDriverAlreadyAssigned) || errors.As(err, &transitionErr) {
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
