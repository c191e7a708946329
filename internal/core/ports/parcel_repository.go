// Package ports defines the persistence contracts consumed by the application
// layer. Adapters implement these interfaces; command and query handlers
// depend on them, never on concrete storage.
package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
//
// Writes that race with concurrent requests (assignment, reassignment, status
// transitions) go through UpdateConditional, which embeds the precondition in
// the write predicate instead of trusting a prior read.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// UpdateConditional persists the aggregate's current state, but only if
	// the stored row still matches the expected status and driver binding the
	// caller observed. When the predicate no longer holds the write affects
	// zero rows and errs.ErrConcurrencyConflict is returned; the aggregate in
	// storage is left untouched.
	//
	// New status history entries carried by the aggregate are appended in the
	// same operation so a history entry never exists without its status
	// change having committed.
	UpdateConditional(
		ctx context.Context,
		aggregate *parcel.Parcel,
		expectedStatus parcel.Status,
		expectedDriverID *kernel.UUID,
	) error

	// Get retrieves a parcel aggregate by its unique identifier, including
	// its status history. Soft-deleted parcels are treated as absent.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingNumber retrieves a parcel aggregate by its tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error)

	// TrackingNumberExists reports whether a tracking number is already in
	// use. Read-only; used by the tracking number generator.
	TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error)

	// GetHistory retrieves the status history of a parcel ordered by creation
	// time, oldest first.
	GetHistory(ctx context.Context, parcelID kernel.UUID) ([]parcel.StatusHistoryEntry, error)

	// AddProofOfDelivery persists a proof-of-delivery record. Called within
	// the same transaction as the delivered transition.
	AddProofOfDelivery(ctx context.Context, proof parcel.ProofOfDelivery) error
}
