// Package review contains the review entity as consumed by rating
// aggregation. Review CRUD itself lives outside this core; only the fields
// that feed a driver's rating aggregate are modeled here.
package review

import (
	"errors"

	"parcels/internal/core/domain/model/driver"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// ErrReviewIsNotConstructed is returned when a Review instance was not created
// through the NewReview or RestoreReview factory methods.
var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview or RestoreReview")

// Review is a rating left for a driver. Only public, non-deleted reviews
// participate in the driver's rating aggregate.
type Review struct {
	id         kernel.UUID
	revieweeID kernel.UUID
	reviewerID kernel.UUID
	rating     int
	isPublic   bool
	isDeleted  bool

	isConstructed bool
}

// NewReview creates a review with a validated rating.
func NewReview(
	id kernel.UUID,
	revieweeID kernel.UUID,
	reviewerID kernel.UUID,
	rating int,
	isPublic bool,
) (*Review, error) {
	r := &Review{
		isPublic:      isPublic,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setReviewee(revieweeID),
		r.setReviewer(reviewerID),
		r.setRating(rating),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreReview reconstructs a Review from persistence.
func RestoreReview(
	id kernel.UUID,
	revieweeID kernel.UUID,
	reviewerID kernel.UUID,
	rating int,
	isPublic bool,
	isDeleted bool,
) (*Review, error) {
	r, err := NewReview(id, revieweeID, reviewerID, rating, isPublic)
	if err != nil {
		return nil, err
	}

	r.isDeleted = isDeleted
	return r, nil
}

// Validate ensures the Review instance was properly constructed through a
// factory function.
func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}

	return nil
}

// ID returns the review's unique identifier.
func (r *Review) ID() kernel.UUID {
	return r.id
}

// Reviewee returns the identifier of the driver being reviewed.
func (r *Review) Reviewee() kernel.UUID {
	return r.revieweeID
}

// Reviewer returns the identifier of the review author.
func (r *Review) Reviewer() kernel.UUID {
	return r.reviewerID
}

// Rating returns the review rating (RatingMin..RatingMax).
func (r *Review) Rating() int {
	return r.rating
}

// IsPublic reports whether the review participates in rating aggregation.
func (r *Review) IsPublic() bool {
	return r.isPublic
}

// IsDeleted reports whether the review was soft-deleted.
func (r *Review) IsDeleted() bool {
	return r.isDeleted
}

// setID validates and sets the review's unique identifier.
// This is a private method used only during construction.
func (r *Review) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

// setReviewee validates and sets the reviewed driver's identifier.
// This is a private method used only during construction.
func (r *Review) setReviewee(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.revieweeID = id
	return nil
}

// setReviewer validates and sets the review author's identifier.
// This is a private method used only during construction.
func (r *Review) setReviewer(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.reviewerID = id
	return nil
}

// setRating validates and sets the rating value.
// This is a private method used only during construction.
func (r *Review) setRating(rating int) error {
	if rating < driver.RatingMin || rating > driver.RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, driver.RatingMin, driver.RatingMax)
	}
	r.rating = rating
	return nil
}
