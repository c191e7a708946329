// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture: handlers read straight
// from the database and return plain response structs, bypassing the
// aggregates.
package queries

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrGetStatusHistoryQueryIsNotConstructed = errors.New(
	"GetStatusHistoryQuery must be created via NewGetStatusHistoryQuery constructor",
)

// GetStatusHistoryQuery retrieves the full status history of one parcel,
// ordered oldest first.
//
// Example:
//
//	query, err := NewGetStatusHistoryQuery(parcelID)
//	if err != nil {
//	    return err
//	}
//	entries, err := handler.Handle(ctx, query)
type GetStatusHistoryQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStatusHistoryQuery creates a validated status history query.
func NewGetStatusHistoryQuery(parcelID kernel.UUID) (GetStatusHistoryQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetStatusHistoryQuery{}, err
	}

	return GetStatusHistoryQuery{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ParcelID returns the parcel whose history is requested.
func (q GetStatusHistoryQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// Validate ensures the query was created through the constructor.
func (q GetStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusHistoryQueryIsNotConstructed)
}

// GetStatusHistoryQueryResponse is one status history entry as exposed to
// read clients. Location is nil when no GPS fix was recorded.
type GetStatusHistoryQueryResponse struct {
	ID        kernel.UUID
	Status    string
	ActorID   kernel.UUID
	Note      string
	Location  *kernel.GeoPoint
	CreatedAt time.Time
}
