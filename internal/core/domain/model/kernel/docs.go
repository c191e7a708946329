// Package kernel contains shared value objects used across the domain model.
//
// The kernel provides the building blocks that all aggregates depend on:
//   - UUID: validated entity identifiers wrapping github.com/google/uuid
//   - GeoPoint: validated geographic coordinates for status history entries
//
// All kernel types are immutable value objects. Their zero values are invalid
// and construction is only possible through the provided factory functions,
// which guarantees that any instance in circulation has passed validation.
package kernel
