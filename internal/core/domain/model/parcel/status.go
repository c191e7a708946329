package parcel

import (
	"errors"
	"fmt"

	"parcels/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel error for status changes that are not
// present in the transition table. Use errors.Is to detect it and inspect the
// concrete *InvalidTransitionError for the offending pair.
var ErrInvalidTransition = errors.New("status transition is not allowed")

// InvalidTransitionError reports a rejected status change.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of a parcel.
// It implements a state machine with defined transitions to ensure
// parcels follow the correct delivery workflow.
//
// State transitions:
//
//	pending ──> assigned ──> picked_up ──> in_transit ──> delivered_to_recipient ──> delivered
//	   │            │             │             │
//	   └────────────┴─────────────┴─────────────┴──> cancelled
//
// delivered and cancelled are terminal; no transition leaves them.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a parcel is first created.
	// Parcels in this status are waiting to be assigned to a driver.
	Pending

	// Assigned indicates the parcel has been assigned to a driver.
	Assigned

	// PickedUp indicates the driver has collected the parcel from the sender.
	PickedUp

	// InTransit indicates the parcel is on its way to the recipient.
	InTransit

	// DeliveredToRecipient indicates the driver has handed the parcel over;
	// the recipient has not confirmed receipt yet.
	DeliveredToRecipient

	// Delivered indicates the recipient has confirmed receipt.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the delivery was called off before completion.
	// This is a terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "unknown",
		Pending:              "pending",
		Assigned:             "assigned",
		PickedUp:             "picked_up",
		InTransit:            "in_transit",
		DeliveredToRecipient: "delivered_to_recipient",
		Delivered:            "delivered",
		Cancelled:            "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:              "pending",
		Assigned:             "assigned",
		PickedUp:             "picked_up",
		InTransit:            "in_transit",
		DeliveredToRecipient: "delivered_to_recipient",
		Delivered:            "delivered",
		Cancelled:            "cancelled",
	}
}

// getTransitionTable returns the allowed target statuses per source status.
// This table is the single authority on legal transitions; cancellation rules
// are encoded here as well, with no special-case bypass anywhere else.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:              {Assigned, Cancelled},
		Assigned:             {PickedUp, Cancelled},
		PickedUp:             {InTransit, Cancelled},
		InTransit:            {DeliveredToRecipient, Cancelled},
		DeliveredToRecipient: {Delivered},
		Delivered:            {},
		Cancelled:            {},
	}
}

// ParseStatus converts a string representation into a Status.
// Returns an error for unknown strings; used when parsing API input.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values outside the defined set are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered and Cancelled are the terminal states.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the transition table permits moving from
// the current status to the target, without performing the transition.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitionTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the requested status change against the transition
// table and returns the new status.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (Unknown, *InvalidTransitionError) otherwise
//
// The state machine is actor-agnostic: who may trigger a given transition
// (for example, only the recipient may confirm delivery) is enforced by the
// calling operation, not here.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, &InvalidTransitionError{From: s, To: target}
	}

	return target, nil
}

// ValidateCanHaveDriver validates the consistency between parcel status and
// driver binding. A driver is bound if and only if the parcel progressed past
// pending without being cancelled.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	requiresDriver := s == Assigned || s == PickedUp || s == InTransit ||
		s == DeliveredToRecipient || s == Delivered

	if hasDriver && !requiresDriver {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !hasDriver && requiresDriver {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}
