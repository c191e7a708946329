package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelByTrackingNumberQueryHandler reads the customer-facing parcel view
// from the database. Soft-deleted parcels are treated as absent.
type GetParcelByTrackingNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelByTrackingNumberQueryHandler creates a handler for tracking lookups.
// Requires a GORM database connection for query execution.
func NewGetParcelByTrackingNumberQueryHandler(db *gorm.DB) GetParcelByTrackingNumberQueryHandler {
	return GetParcelByTrackingNumberQueryHandler{db: db}
}

// Handle executes the tracking number lookup.
// Returns errs.ObjectNotFoundError when no parcel carries the number.
func (h GetParcelByTrackingNumberQueryHandler) Handle(
	ctx context.Context,
	query GetParcelByTrackingNumberQuery,
) (GetParcelByTrackingNumberQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelByTrackingNumberQueryResponse{}, err
	}

	var resp GetParcelByTrackingNumberQueryResponse
	var id uuid.UUID
	var driverID uuid.NullUUID
	var status int
	var trackingNumber string
	var createdAt time.Time
	var assignedAt, pickedUpAt, deliveredAt, deliveryConfirmedAt sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			status,
			driver_id,
			created_at,
			assigned_at,
			picked_up_at,
			delivered_at,
			delivery_confirmed_at
		FROM parcels
		WHERE tracking_number = ? AND is_deleted = false
	`, query.TrackingNumber()).Row()

	err := row.Scan(
		&id,
		&trackingNumber,
		&status,
		&driverID,
		&createdAt,
		&assignedAt,
		&pickedUpAt,
		&deliveredAt,
		&deliveryConfirmedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetParcelByTrackingNumberQueryResponse{},
				errs.NewObjectNotFoundError("trackingNumber", query.TrackingNumber())
		}
		return GetParcelByTrackingNumberQueryResponse{}, err
	}

	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetParcelByTrackingNumberQueryResponse{}, err
	}

	resp.ID = parcelID
	resp.TrackingNumber = trackingNumber
	resp.Status = parcel.Status(status).String()
	resp.CreatedAt = createdAt

	if driverID.Valid {
		driver, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return GetParcelByTrackingNumberQueryResponse{}, idErr
		}
		resp.DriverID = &driver
	}

	resp.AssignedAt = nullableTime(assignedAt)
	resp.PickedUpAt = nullableTime(pickedUpAt)
	resp.DeliveredAt = nullableTime(deliveredAt)
	resp.DeliveryConfirmedAt = nullableTime(deliveryConfirmedAt)

	return resp, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
