package parcel

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// ErrStatusHistoryEntryIsNotConstructed is returned when a StatusHistoryEntry
// was not created through one of its factory functions.
var ErrStatusHistoryEntryIsNotConstructed = errors.New(
	"StatusHistoryEntry must be created via NewStatusHistoryEntry or RestoreStatusHistoryEntry")

// StatusHistoryEntry is an immutable, append-only audit record of a single
// status transition. Entries are never mutated or deleted; their creation
// order is the order of the transitions they record.
type StatusHistoryEntry struct {
	id        kernel.UUID
	parcelID  kernel.UUID
	status    Status
	actorID   kernel.UUID
	note      string
	location  *kernel.GeoPoint
	createdAt time.Time

	isConstructed bool
}

// NewStatusHistoryEntry creates a history entry for a transition that just
// happened. The note and location are optional; actorID identifies who
// performed the transition.
func NewStatusHistoryEntry(
	parcelID kernel.UUID,
	status Status,
	actorID kernel.UUID,
	note string,
	location *kernel.GeoPoint,
	createdAt time.Time,
) (StatusHistoryEntry, error) {
	return RestoreStatusHistoryEntry(kernel.NewUUID(), parcelID, status, actorID, note, location, createdAt)
}

// RestoreStatusHistoryEntry reconstructs a history entry from persistence.
func RestoreStatusHistoryEntry(
	id kernel.UUID,
	parcelID kernel.UUID,
	status Status,
	actorID kernel.UUID,
	note string,
	location *kernel.GeoPoint,
	createdAt time.Time,
) (StatusHistoryEntry, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate(), status.Validate(), actorID.Validate()); err != nil {
		return StatusHistoryEntry{}, err
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return StatusHistoryEntry{}, err
		}
	}

	if createdAt.IsZero() {
		return StatusHistoryEntry{}, errs.NewValueIsRequiredError("createdAt")
	}

	return StatusHistoryEntry{
		id:            id,
		parcelID:      parcelID,
		status:        status,
		actorID:       actorID,
		note:          note,
		location:      location,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the entry was created through a factory function.
func (e StatusHistoryEntry) Validate() error {
	if !e.isConstructed {
		return ErrStatusHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e StatusHistoryEntry) ID() kernel.UUID {
	return e.id
}

// ParcelID returns the identifier of the parcel this entry belongs to.
func (e StatusHistoryEntry) ParcelID() kernel.UUID {
	return e.parcelID
}

// Status returns the status the parcel transitioned to.
func (e StatusHistoryEntry) Status() Status {
	return e.status
}

// Actor returns the identifier of whoever performed the transition.
func (e StatusHistoryEntry) Actor() kernel.UUID {
	return e.actorID
}

// Note returns the optional free-text note; empty when none was supplied.
func (e StatusHistoryEntry) Note() string {
	return e.note
}

// Location returns the optional coordinates recorded with the transition.
// Returns nil when no location was supplied.
func (e StatusHistoryEntry) Location() *kernel.GeoPoint {
	return e.location
}

// CreatedAt returns when the transition was recorded.
func (e StatusHistoryEntry) CreatedAt() time.Time {
	return e.createdAt
}
