// Package driver contains the driver aggregate as seen by the parcel
// lifecycle engine: the availability flags consulted on assignment and the
// derived rating aggregate maintained by review events.
package driver

import (
	"errors"
	"math"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	// ErrDriverIsNotConstructed is returned when a Driver instance was not created
	// through the NewDriver or RestoreDriver factory methods.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")
)

const (
	// RatingMin is the lowest valid review rating.
	RatingMin = 1
	// RatingMax is the highest valid review rating.
	RatingMax = 5
)

// Driver represents the subset of a driver account relevant to parcel
// assignment and rating aggregation.
//
// Invariants:
//   - A driver is assignable only while active, available and not deleted
//   - The rating aggregate always equals the mean of the public reviews it
//     was recomputed from, rounded to two decimal places
//
// Assignment does not flip isAvailable: a driver may legitimately hold
// several concurrent parcels.
type Driver struct {
	id   kernel.UUID
	name string

	isActive    bool
	isAvailable bool
	isDeleted   bool

	ratingAverage float64
	ratingCount   int

	isConstructed bool
}

// NewDriver creates a new active, available driver with an empty rating
// aggregate.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	d := &Driver{
		isActive:      true,
		isAvailable:   true,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver from persistence.
func RestoreDriver(
	id kernel.UUID,
	name string,
	isActive bool,
	isAvailable bool,
	isDeleted bool,
	ratingAverage float64,
	ratingCount int,
) (*Driver, error) {
	d, err := NewDriver(id, name)
	if err != nil {
		return nil, err
	}

	if ratingCount < 0 {
		return nil, errs.NewValueIsInvalidError("ratingCount")
	}

	d.isActive = isActive
	d.isAvailable = isAvailable
	d.isDeleted = isDeleted
	d.ratingAverage = ratingAverage
	d.ratingCount = ratingCount

	return d, nil
}

// Validate ensures the Driver instance was properly constructed through a
// factory function.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}

	return nil
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// IsActive reports the employment/account status.
func (d *Driver) IsActive() bool {
	return d.isActive
}

// IsAvailable reports the ready-for-work flag.
func (d *Driver) IsAvailable() bool {
	return d.isAvailable
}

// IsDeleted reports whether the driver account was soft-deleted.
func (d *Driver) IsDeleted() bool {
	return d.isDeleted
}

// IsAssignable reports whether the driver may receive parcel assignments:
// active, available and not soft-deleted.
func (d *Driver) IsAssignable() bool {
	return d.isActive && d.isAvailable && !d.isDeleted
}

// SetAvailability updates the ready-for-work flag.
func (d *Driver) SetAvailability(isAvailable bool) {
	d.isAvailable = isAvailable
}

// RatingAverage returns the derived mean of the driver's public reviews,
// rounded to two decimal places. Zero when the driver has no public reviews.
func (d *Driver) RatingAverage() float64 {
	return d.ratingAverage
}

// RatingCount returns the number of public reviews behind the average.
func (d *Driver) RatingCount() int {
	return d.ratingCount
}

// RecalculateRating replaces the rating aggregate with a full recomputation
// over the supplied public review ratings. An empty slice resets the
// aggregate to zero. The mean is rounded to two decimal places.
//
// The aggregate is always recomputed from scratch, never patched
// incrementally, so edits and deletions of reviews cannot cause drift.
func (d *Driver) RecalculateRating(ratings []int) error {
	if len(ratings) == 0 {
		d.ratingAverage = 0
		d.ratingCount = 0
		return nil
	}

	sum := 0
	for _, rating := range ratings {
		if rating < RatingMin || rating > RatingMax {
			return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
		}
		sum += rating
	}

	mean := float64(sum) / float64(len(ratings))
	d.ratingAverage = math.Round(mean*100) / 100
	d.ratingCount = len(ratings)
	return nil
}

// setID validates and sets the driver's unique identifier.
// This is a private method used only during construction.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setName validates and sets the driver's display name.
// This is a private method used only during construction.
func (d *Driver) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}
