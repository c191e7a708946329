// Package parcel contains the parcel aggregate and its lifecycle state machine.
//
// A parcel is the aggregate root of the delivery domain. It travels through a
// fixed set of statuses (pending, assigned, picked_up, in_transit,
// delivered_to_recipient, delivered, cancelled) and every successful status
// transition appends exactly one immutable StatusHistoryEntry to the aggregate.
//
// The transition table is owned by the Status type; the Parcel aggregate adds
// the transition side effects on top of it:
//   - picked_up sets the actual-pickup timestamp once
//   - delivered_to_recipient sets the actual-delivery timestamp once and
//     counts a delivery attempt
//   - delivered records the confirmation actor and the total delivery duration
//   - cancelled clears the driver binding
//
// Driver assignment and reassignment mutate the driver binding without going
// outside the table: assignment rides the pending -> assigned transition,
// reassignment replaces the driver while the status stays untouched.
package parcel
