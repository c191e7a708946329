package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
)

// ReviewRepository defines the read-only persistence contract for reviews.
//
// Review CRUD is owned by a collaborating subsystem; this core only reads
// review ratings to recompute driver rating aggregates.
type ReviewRepository interface {
	// GetPublicRatingsByReviewee retrieves the rating values of all public,
	// non-deleted reviews where the given driver is the reviewee.
	GetPublicRatingsByReviewee(ctx context.Context, revieweeID kernel.UUID) ([]int, error)
}
