// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence.
package driverrepo

import (
	"parcels/internal/core/domain/model/driver"
	"parcels/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// The rating columns hold the derived aggregate; reviews remain the source of
// truth.
type DriverDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string

	IsActive    bool
	IsAvailable bool
	IsDeleted   bool `gorm:"index"`

	RatingAverage float64
	RatingCount   int
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		IsActive:      aggregate.IsActive(),
		IsAvailable:   aggregate.IsAvailable(),
		IsDeleted:     aggregate.IsDeleted(),
		RatingAverage: aggregate.RatingAverage(),
		RatingCount:   aggregate.RatingCount(),
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(
		id,
		dto.Name,
		dto.IsActive,
		dto.IsAvailable,
		dto.IsDeleted,
		dto.RatingAverage,
		dto.RatingCount,
	)
}
