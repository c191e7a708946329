package kernel

import (
	"errors"
	"fmt"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

const (
	// GeoPointMinLatitude is the minimum valid latitude in decimal degrees.
	GeoPointMinLatitude float64 = -90
	// GeoPointMaxLatitude is the maximum valid latitude in decimal degrees.
	GeoPointMaxLatitude float64 = 90
	// GeoPointMinLongitude is the minimum valid longitude in decimal degrees.
	GeoPointMinLongitude float64 = -180
	// GeoPointMaxLongitude is the maximum valid longitude in decimal degrees.
	GeoPointMaxLongitude float64 = 180
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
// GeoPoints must be created using the NewGeoPoint constructor to ensure validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic coordinate pair with validated bounds.
// GeoPoint is an immutable value object; the zero value is invalid and will
// fail validation - use the constructor to create instances.
//
// Status history entries carry an optional GeoPoint so that pickup, transit
// and delivery scans can be placed on a map by the (out of scope) UI layer.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(52.52, 13.405)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(point) // Output: GeoPoint(52.520000,13.405000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint with the specified coordinates.
// Latitude must be within [GeoPointMinLatitude..GeoPointMaxLatitude] and
// longitude within [GeoPointMinLongitude..GeoPointMaxLongitude].
// Returns an error if either coordinate is outside the valid bounds.
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed using the constructor.
// The zero value of GeoPoint is invalid and will fail this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable string representation of the GeoPoint.
// This method implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two geo points for equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// setLatitude sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Although mixing receiver types is generally not recommended, in this case we use pointer
// receivers for these private setters to enable self-encapsulated validation of business
// requirements during object construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < GeoPointMinLatitude || latitude > GeoPointMaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, GeoPointMinLatitude, GeoPointMaxLatitude)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Although mixing receiver types is generally not recommended, in this case we use pointer
// receivers for these private setters to enable self-encapsulated validation of business
// requirements during object construction.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < GeoPointMinLongitude || longitude > GeoPointMaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, GeoPointMinLongitude, GeoPointMaxLongitude)
	}

	p.longitude = longitude
	return nil
}
