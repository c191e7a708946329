package reviewrepo

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/review"

	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GORM review repository.
// Reviews are not aggregates of this core, so no tracker is involved.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Add saves a review row. The review subsystem owns review writes in
// production; this path exists for seeding and tests.
func (r *GormReviewRepository) Add(ctx context.Context, entity *review.Review) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByReviewee retrieves all reviews about a driver, including hidden and
// soft-deleted ones. Mainly a support/debugging path.
func (r *GormReviewRepository) GetByReviewee(ctx context.Context, revieweeID kernel.UUID) ([]*review.Review, error) {
	if err := revieweeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReviewDTO
	err := r.db.WithContext(ctx).
		Where("reviewee_id = ?", revieweeID.Bytes()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]*review.Review, 0, len(dtos))
	for _, dto := range dtos {
		entity, dtoErr := toDomain(dto)
		if dtoErr != nil {
			return nil, dtoErr
		}
		reviews = append(reviews, entity)
	}

	return reviews, nil
}

// GetPublicRatingsByReviewee retrieves the rating values of all public,
// non-deleted reviews about the given driver.
func (r *GormReviewRepository) GetPublicRatingsByReviewee(ctx context.Context, revieweeID kernel.UUID) ([]int, error) {
	if err := revieweeID.Validate(); err != nil {
		return nil, err
	}

	ratings := make([]int, 0)
	err := r.db.WithContext(ctx).
		Model(&ReviewDTO{}).
		Where("reviewee_id = ? AND is_public = true AND is_deleted = false", revieweeID.Bytes()).
		Order("id").
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, err
	}

	return ratings, nil
}
