// Package reviewrepo provides the read-side persistence for driver reviews.
// Review CRUD is owned by a collaborating subsystem; this adapter only reads
// rating values for the rating recomputation flows, plus a write path used by
// tests to seed data.
package reviewrepo

import (
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/review"

	"github.com/google/uuid"
)

// ReviewDTO represents the database structure for review rows.
type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RevieweeID uuid.UUID `gorm:"type:uuid;index"`
	ReviewerID uuid.UUID `gorm:"type:uuid"`
	Rating     int
	IsPublic   bool
	IsDeleted  bool
}

// TableName specifies the database table name for review entities.
func (ReviewDTO) TableName() string {
	return "reviews"
}

// fromDomain converts a review domain entity to its database representation.
func fromDomain(entity *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:         entity.ID().Bytes(),
		RevieweeID: entity.Reviewee().Bytes(),
		ReviewerID: entity.Reviewer().Bytes(),
		Rating:     entity.Rating(),
		IsPublic:   entity.IsPublic(),
		IsDeleted:  entity.IsDeleted(),
	}
}

// toDomain converts a database DTO to a review domain entity.
func toDomain(dto ReviewDTO) (*review.Review, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	revieweeID, err := kernel.UUIDFromBytes(dto.RevieweeID[:])
	if err != nil {
		return nil, err
	}

	reviewerID, err := kernel.UUIDFromBytes(dto.ReviewerID[:])
	if err != nil {
		return nil, err
	}

	return review.RestoreReview(id, revieweeID, reviewerID, dto.Rating, dto.IsPublic, dto.IsDeleted)
}
