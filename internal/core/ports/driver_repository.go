package ports

import (
	"context"

	"parcels/internal/core/domain/model/driver"
	"parcels/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
// Soft-deleted drivers are treated as absent by Get and GetAll.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAll retrieves all non-deleted drivers.
	// Used by the rating reconciliation sweep.
	GetAll(ctx context.Context) ([]*driver.Driver, error)
}
