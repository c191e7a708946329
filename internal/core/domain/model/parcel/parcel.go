package parcel

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through the NewParcel or RestoreParcel factory methods.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	// ErrDriverAlreadyAssigned is returned when assigning a driver to a parcel
	// that already has one. Use Reassign to replace the bound driver.
	ErrDriverAlreadyAssigned = errors.New("parcel already has a driver assigned")

	// ErrNoDriverAssigned is returned when reassigning a parcel that has no
	// driver bound yet. Use Assign for the initial binding.
	ErrNoDriverAssigned = errors.New("parcel has no driver assigned")

	// ErrParcelInTerminalStatus is returned when mutating the driver binding of
	// a delivered or cancelled parcel.
	ErrParcelInTerminalStatus = errors.New("parcel is in a terminal status")
)

// Parcel represents a single delivery request tracked from creation to
// delivery or cancellation. It is the aggregate root that owns the status
// state machine side effects, the driver binding and the status history.
//
// Parcel maintains these invariants:
//   - The tracking number is set at creation and never changes
//   - Status transitions follow the table owned by Status
//   - A driver is bound if and only if the status requires one
//   - Every successful transition appends exactly one StatusHistoryEntry
//   - Cancellation clears the driver binding and the assigned-at timestamp
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through validated methods.
type Parcel struct {
	id             kernel.UUID
	trackingNumber string

	senderID    *kernel.UUID
	recipientID *kernel.UUID
	driverID    *kernel.UUID

	status Status

	createdAt           time.Time
	assignedAt          *time.Time
	pickedUpAt          *time.Time
	deliveredAt         *time.Time
	deliveryConfirmedAt *time.Time
	confirmedByID       *kernel.UUID

	deliveredToRecipient bool
	deliveryAttempts     int
	deliveryDuration     time.Duration

	history []StatusHistoryEntry

	isConstructed bool
}

// NewParcel creates a new Parcel in pending status.
//
// Sender and recipient are optional references (a parcel may be submitted
// anonymously); the tracking number must already be generated and unique.
func NewParcel(
	id kernel.UUID,
	trackingNumber string,
	senderID *kernel.UUID,
	recipientID *kernel.UUID,
	createdAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setParty(&p.senderID, senderID),
		p.setParty(&p.recipientID, recipientID),
		p.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a Parcel from persistence.
// It re-checks the status/driver consistency invariant so that corrupt rows
// are rejected before the aggregate is used.
func RestoreParcel(
	id kernel.UUID,
	trackingNumber string,
	senderID *kernel.UUID,
	recipientID *kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	createdAt time.Time,
	assignedAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	deliveryConfirmedAt *time.Time,
	confirmedByID *kernel.UUID,
	deliveredToRecipient bool,
	deliveryAttempts int,
	deliveryDuration time.Duration,
	history []StatusHistoryEntry,
) (*Parcel, error) {
	p, err := NewParcel(id, trackingNumber, senderID, recipientID, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if err = status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err = driverID.Validate(); err != nil {
			return nil, err
		}
		driver := *driverID
		p.driverID = &driver
	}

	p.status = status
	p.assignedAt = assignedAt
	p.pickedUpAt = pickedUpAt
	p.deliveredAt = deliveredAt
	p.deliveryConfirmedAt = deliveryConfirmedAt
	p.confirmedByID = confirmedByID
	p.deliveredToRecipient = deliveredToRecipient
	p.deliveryAttempts = deliveryAttempts
	p.deliveryDuration = deliveryDuration
	p.history = history

	return p, nil
}

// Validate ensures the Parcel instance was properly constructed through a
// factory function. This prevents bypassing validation by directly
// instantiating the struct.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}

	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingNumber returns the human-facing tracking number.
// It is immutable once assigned at creation.
func (p *Parcel) TrackingNumber() string {
	return p.trackingNumber
}

// Sender returns the sender reference, or nil for anonymous submissions.
func (p *Parcel) Sender() *kernel.UUID {
	return p.senderID
}

// Recipient returns the recipient reference, or nil if none was supplied.
func (p *Parcel) Recipient() *kernel.UUID {
	return p.recipientID
}

// Driver returns the assigned driver's ID, or nil if no driver is bound.
func (p *Parcel) Driver() *kernel.UUID {
	return p.driverID
}

// Status returns the current status of the parcel.
func (p *Parcel) Status() Status {
	return p.status
}

// CreatedAt returns when the parcel was submitted.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// AssignedAt returns when the current driver was bound, or nil.
func (p *Parcel) AssignedAt() *time.Time {
	return p.assignedAt
}

// PickedUpAt returns the actual-pickup timestamp, or nil.
func (p *Parcel) PickedUpAt() *time.Time {
	return p.pickedUpAt
}

// DeliveredAt returns the actual-delivery timestamp, or nil.
func (p *Parcel) DeliveredAt() *time.Time {
	return p.deliveredAt
}

// DeliveryConfirmedAt returns when the recipient confirmed receipt, or nil.
func (p *Parcel) DeliveryConfirmedAt() *time.Time {
	return p.deliveryConfirmedAt
}

// ConfirmedBy returns the actor who confirmed receipt, or nil.
func (p *Parcel) ConfirmedBy() *kernel.UUID {
	return p.confirmedByID
}

// IsDeliveredToRecipient reports whether the parcel was handed over.
func (p *Parcel) IsDeliveredToRecipient() bool {
	return p.deliveredToRecipient
}

// DeliveryAttempts returns how many hand-over attempts were recorded.
func (p *Parcel) DeliveryAttempts() int {
	return p.deliveryAttempts
}

// DeliveryDuration returns the total time from submission to confirmed
// receipt. Zero until the delivery is confirmed.
func (p *Parcel) DeliveryDuration() time.Duration {
	return p.deliveryDuration
}

// History returns the status history entries accumulated on this aggregate
// instance, ordered oldest first.
func (p *Parcel) History() []StatusHistoryEntry {
	return p.history
}

// Assign binds a driver to a pending, driver-less parcel and moves it to
// assigned status.
//
// Business rules:
//   - The parcel must have no driver bound (ErrDriverAlreadyAssigned)
//   - The pending -> assigned transition must be legal (InvalidTransitionError)
//
// On success the driver binding and assigned-at timestamp are set and one
// history entry is appended, attributed to the supplied actor.
func (p *Parcel) Assign(driverID kernel.UUID, actorID kernel.UUID, note string, now time.Time) error {
	if err := errors.Join(driverID.Validate(), actorID.Validate()); err != nil {
		return err
	}

	if p.driverID != nil {
		return ErrDriverAlreadyAssigned
	}

	newStatus, err := p.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	entry, err := NewStatusHistoryEntry(p.id, newStatus, actorID, note, nil, now)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.driverID = &driverID
	p.assignedAt = &now
	p.history = append(p.history, entry)
	return nil
}

// Reassign replaces the bound driver without changing the parcel status.
//
// Unlike Assign this is valid for any non-terminal status that already has a
// driver: reassignment corrects a dispatch decision without restarting the
// delivery. Only the driver binding and assigned-at timestamp change; no
// status transition happens and no history entry is appended.
func (p *Parcel) Reassign(newDriverID kernel.UUID, now time.Time) error {
	if err := newDriverID.Validate(); err != nil {
		return err
	}

	if p.status.IsTerminal() {
		return ErrParcelInTerminalStatus
	}

	if p.driverID == nil {
		return ErrNoDriverAssigned
	}

	p.driverID = &newDriverID
	p.assignedAt = &now
	return nil
}

// TransitionTo applies a status change with its side effects and appends
// exactly one history entry attributed to the supplied actor.
//
// Side effects per target status:
//   - PickedUp: sets the actual-pickup timestamp if unset
//   - DeliveredToRecipient: sets the actual-delivery timestamp if unset,
//     marks the hand-over flag and counts a delivery attempt
//   - Delivered: records the confirmation actor and timestamp and computes
//     the total delivery duration
//   - Cancelled: clears the driver binding and assigned-at timestamp
//
// The transition table decides legality; any pair not in the table is
// rejected with an InvalidTransitionError and the aggregate is unchanged.
func (p *Parcel) TransitionTo(
	target Status,
	actorID kernel.UUID,
	location *kernel.GeoPoint,
	note string,
	now time.Time,
) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newStatus, err := p.status.TransitionTo(target)
	if err != nil {
		return err
	}

	entry, err := NewStatusHistoryEntry(p.id, newStatus, actorID, note, location, now)
	if err != nil {
		return err
	}

	switch newStatus {
	case PickedUp:
		if p.pickedUpAt == nil {
			p.pickedUpAt = &now
		}
	case DeliveredToRecipient:
		if p.deliveredAt == nil {
			p.deliveredAt = &now
		}
		p.deliveredToRecipient = true
		p.deliveryAttempts++
	case Delivered:
		p.confirmedByID = &actorID
		p.deliveryConfirmedAt = &now
		p.deliveryDuration = now.Sub(p.createdAt)
	case Cancelled:
		p.driverID = nil
		p.assignedAt = nil
	case Unknown, Pending, Assigned, InTransit:
		// no extra side effects
	}

	p.status = newStatus
	p.history = append(p.history, entry)
	return nil
}

// ConfirmDelivery records the recipient's confirmation of receipt by applying
// the delivered transition. The state machine is actor-agnostic; verifying
// that the actor actually is the parcel's recipient is the caller's job.
func (p *Parcel) ConfirmDelivery(recipientID kernel.UUID, note string, now time.Time) error {
	return p.TransitionTo(Delivered, recipientID, nil, note, now)
}

// setID validates and sets the parcel's unique identifier.
// This is a private method used only during construction.
func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setTrackingNumber validates and sets the immutable tracking number.
// This is a private method used only during construction.
func (p *Parcel) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	p.trackingNumber = trackingNumber
	return nil
}

// setParty validates and sets an optional party reference.
// This is a private method used only during construction.
func (p *Parcel) setParty(field **kernel.UUID, id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	value := *id
	*field = &value
	return nil
}

// setCreatedAt validates and sets the submission timestamp.
// This is a private method used only during construction.
func (p *Parcel) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	p.createdAt = createdAt
	return nil
}
