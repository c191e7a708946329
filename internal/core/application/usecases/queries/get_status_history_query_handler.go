package queries

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStatusHistoryQueryHandler reads a parcel's status history from the
// database.
//
// Entries are ordered by creation time with the entry ID as a tiebreaker, so
// two transitions recorded in the same instant still come back in a stable
// order.
type GetStatusHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusHistoryQueryHandler creates a handler for status history queries.
// Requires a GORM database connection for query execution.
func NewGetStatusHistoryQueryHandler(db *gorm.DB) GetStatusHistoryQueryHandler {
	return GetStatusHistoryQueryHandler{db: db}
}

// Handle executes the status history query.
// Returns an empty slice for a parcel with no recorded transitions.
func (h GetStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetStatusHistoryQuery,
) ([]GetStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetStatusHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			actor_id,
			note,
			latitude,
			longitude,
			created_at
		FROM parcel_status_history
		WHERE parcel_id = ?
		ORDER BY created_at, id
	`, query.ParcelID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetStatusHistoryQueryResponse
		var id, actorID uuid.UUID
		var status int
		var note string
		var latitude, longitude *float64
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&status,
			&actorID,
			&note,
			&latitude,
			&longitude,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID

		entryActor, actorErr := kernel.UUIDFromBytes(actorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		entry.ActorID = entryActor

		entry.Status = parcel.Status(status).String()
		entry.Note = note
		entry.CreatedAt = createdAt

		if latitude != nil && longitude != nil {
			location, locErr := kernel.NewGeoPoint(*latitude, *longitude)
			if locErr != nil {
				return nil, locErr
			}
			entry.Location = &location
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
