package queries

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrGetParcelByTrackingNumberQueryIsNotConstructed = errors.New(
	"GetParcelByTrackingNumberQuery must be created via NewGetParcelByTrackingNumberQuery constructor",
)

// GetParcelByTrackingNumberQuery looks a parcel up by its public tracking
// number. This is the customer-facing lookup: the tracking number is the only
// identifier printed on labels and notification messages.
type GetParcelByTrackingNumberQuery struct {
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewGetParcelByTrackingNumberQuery creates a validated tracking lookup query.
func NewGetParcelByTrackingNumberQuery(trackingNumber string) (GetParcelByTrackingNumberQuery, error) {
	if trackingNumber == "" {
		return GetParcelByTrackingNumberQuery{}, errs.NewValueIsRequiredError("trackingNumber")
	}

	return GetParcelByTrackingNumberQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// TrackingNumber returns the tracking number to look up.
func (q GetParcelByTrackingNumberQuery) TrackingNumber() string {
	return q.trackingNumber
}

// Validate ensures the query was created through the constructor.
func (q GetParcelByTrackingNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelByTrackingNumberQueryIsNotConstructed)
}

// GetParcelByTrackingNumberQueryResponse is the customer-facing view of a
// parcel: identifiers, current status and the milestone timestamps.
type GetParcelByTrackingNumberQueryResponse struct {
	ID                  kernel.UUID
	TrackingNumber      string
	Status              string
	DriverID            *kernel.UUID
	CreatedAt           time.Time
	AssignedAt          *time.Time
	PickedUpAt          *time.Time
	DeliveredAt         *time.Time
	DeliveryConfirmedAt *time.Time
}
