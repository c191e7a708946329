package http

import (
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateParcelRequest is the body of POST /api/v1/parcels.
type CreateParcelRequest struct {
	SenderID    *uuid.UUID `json:"senderId,omitempty"`
	RecipientID *uuid.UUID `json:"recipientId,omitempty"`
}

// AssignDriverRequest is the body of POST /api/v1/parcels/:parcelId/assign.
type AssignDriverRequest struct {
	DriverID uuid.UUID `json:"driverId"`
	Notes    string    `json:"notes,omitempty"`
}

// ReassignDriverRequest is the body of POST /api/v1/parcels/:parcelId/reassign.
type ReassignDriverRequest struct {
	DriverID uuid.UUID `json:"driverId"`
}

// BulkAssignRequest is the body of POST /api/v1/parcels/bulk-assign.
type BulkAssignRequest struct {
	Assignments []BulkAssignRequestItem `json:"assignments"`
}

// BulkAssignRequestItem is one parcel/driver pairing of a bulk request.
type BulkAssignRequestItem struct {
	ParcelID uuid.UUID `json:"parcelId"`
	DriverID uuid.UUID `json:"driverId"`
	Notes    string    `json:"notes,omitempty"`
}

// BulkAssignResponse summarizes a bulk assignment run.
type BulkAssignResponse struct {
	SuccessCount int                      `json:"successCount"`
	FailedCount  int                      `json:"failedCount"`
	Results      []BulkAssignResponseItem `json:"results"`
}

// BulkAssignResponseItem reports the outcome for one pairing, in request order.
type BulkAssignResponseItem struct {
	ParcelID uuid.UUID `json:"parcelId"`
	DriverID uuid.UUID `json:"driverId"`
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
}

// UpdateStatusRequest is the body of POST /api/v1/parcels/:parcelId/status.
type UpdateStatusRequest struct {
	Status    string   `json:"status"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// ConfirmDeliveryRequest is the body of POST /api/v1/parcels/:parcelId/confirm.
type ConfirmDeliveryRequest struct {
	Signature string `json:"signature,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// CancelParcelRequest is the body of POST /api/v1/parcels/:parcelId/cancel.
type CancelParcelRequest struct {
	Notes string `json:"notes,omitempty"`
}

// Parcel is the JSON representation of a parcel aggregate.
type Parcel struct {
	ID                   uuid.UUID  `json:"id"`
	TrackingNumber       string     `json:"trackingNumber"`
	Status               string     `json:"status"`
	SenderID             *uuid.UUID `json:"senderId,omitempty"`
	RecipientID          *uuid.UUID `json:"recipientId,omitempty"`
	DriverID             *uuid.UUID `json:"driverId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	AssignedAt           *time.Time `json:"assignedAt,omitempty"`
	PickedUpAt           *time.Time `json:"pickedUpAt,omitempty"`
	DeliveredAt          *time.Time `json:"deliveredAt,omitempty"`
	DeliveryConfirmedAt  *time.Time `json:"deliveryConfirmedAt,omitempty"`
	DeliveredToRecipient bool       `json:"deliveredToRecipient"`
	DeliveryAttempts     int        `json:"deliveryAttempts"`
}

// StatusHistoryEntry is the JSON representation of one history entry.
type StatusHistoryEntry struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	ActorID   uuid.UUID `json:"actorId"`
	Note      string    `json:"note,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrackingView is the customer-facing response of GET /api/v1/track/:trackingNumber.
type TrackingView struct {
	ID                  uuid.UUID  `json:"id"`
	TrackingNumber      string     `json:"trackingNumber"`
	Status              string     `json:"status"`
	DriverID            *uuid.UUID `json:"driverId,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	AssignedAt          *time.Time `json:"assignedAt,omitempty"`
	PickedUpAt          *time.Time `json:"pickedUpAt,omitempty"`
	DeliveredAt         *time.Time `json:"deliveredAt,omitempty"`
	DeliveryConfirmedAt *time.Time `json:"deliveryConfirmedAt,omitempty"`
}

// parcelToResponse maps a parcel aggregate to its JSON representation.
func parcelToResponse(aggregate *parcel.Parcel) Parcel {
	resp := Parcel{
		ID:                   aggregate.ID().Bytes(),
		TrackingNumber:       aggregate.TrackingNumber(),
		Status:               aggregate.Status().String(),
		CreatedAt:            aggregate.CreatedAt(),
		AssignedAt:           aggregate.AssignedAt(),
		PickedUpAt:           aggregate.PickedUpAt(),
		DeliveredAt:          aggregate.DeliveredAt(),
		DeliveryConfirmedAt:  aggregate.DeliveryConfirmedAt(),
		DeliveredToRecipient: aggregate.IsDeliveredToRecipient(),
		DeliveryAttempts:     aggregate.DeliveryAttempts(),
	}

	if id := aggregate.Sender(); id != nil {
		raw := id.Bytes()
		resp.SenderID = &raw
	}
	if id := aggregate.Recipient(); id != nil {
		raw := id.Bytes()
		resp.RecipientID = &raw
	}
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		resp.DriverID = &raw
	}

	return resp
}

// bulkResultToResponse maps a bulk assignment result to its JSON representation.
func bulkResultToResponse(result commands.BulkAssignResult) BulkAssignResponse {
	resp := BulkAssignResponse{
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		Results:      make([]BulkAssignResponseItem, 0, len(result.Results)),
	}

	for _, item := range result.Results {
		resp.Results = append(resp.Results, BulkAssignResponseItem{
			ParcelID: item.ParcelID.Bytes(),
			DriverID: item.DriverID.Bytes(),
			Success:  item.Success,
			Message:  item.Message,
		})
	}

	return resp
}

// historyToResponse maps history query responses to their JSON representation.
func historyToResponse(entries []queries.GetStatusHistoryQueryResponse) []StatusHistoryEntry {
	resp := make([]StatusHistoryEntry, 0, len(entries))
	for _, entry := range entries {
		item := StatusHistoryEntry{
			ID:        entry.ID.Bytes(),
			Status:    entry.Status,
			ActorID:   entry.ActorID.Bytes(),
			Note:      entry.Note,
			CreatedAt: entry.CreatedAt,
		}
		if entry.Location != nil {
			lat := entry.Location.Latitude()
			lon := entry.Location.Longitude()
			item.Latitude = &lat
			item.Longitude = &lon
		}
		resp = append(resp, item)
	}
	return resp
}

// trackingToResponse maps the tracking query response to its JSON representation.
func trackingToResponse(view queries.GetParcelByTrackingNumberQueryResponse) TrackingView {
	resp := TrackingView{
		ID:                  view.ID.Bytes(),
		TrackingNumber:      view.TrackingNumber,
		Status:              view.Status,
		CreatedAt:           view.CreatedAt,
		AssignedAt:          view.AssignedAt,
		PickedUpAt:          view.PickedUpAt,
		DeliveredAt:         view.DeliveredAt,
		DeliveryConfirmedAt: view.DeliveryConfirmedAt,
	}

	if view.DriverID != nil {
		raw := view.DriverID.Bytes()
		resp.DriverID = &raw
	}

	return resp
}
