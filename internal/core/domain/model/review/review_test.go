package review_test

import (
	"testing"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/review"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	validID := kernel.NewUUID()
	revieweeID := kernel.NewUUID()
	reviewerID := kernel.NewUUID()

	t.Run("should create valid review", func(t *testing.T) {
		r, err := review.NewReview(validID, revieweeID, reviewerID, 4, true)

		require.NoError(t, err)
		assert.NotNil(t, r)
		require.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(validID))
		assert.True(t, r.Reviewee().IsEqual(revieweeID))
		assert.True(t, r.Reviewer().IsEqual(reviewerID))
		assert.Equal(t, 4, r.Rating())
		assert.True(t, r.IsPublic())
		assert.False(t, r.IsDeleted())
	})

	t.Run("should accept boundary ratings", func(t *testing.T) {
		for _, rating := range []int{1, 5} {
			r, err := review.NewReview(validID, revieweeID, reviewerID, rating, false)

			require.NoError(t, err)
			assert.Equal(t, rating, r.Rating())
		}
	})

	t.Run("should reject out-of-range ratings", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			r, err := review.NewReview(validID, revieweeID, reviewerID, rating, true)

			require.Error(t, err)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should fail with invalid reviewee", func(t *testing.T) {
		var invalidID kernel.UUID

		r, err := review.NewReview(validID, invalidID, reviewerID, 3, true)

		require.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("should fail validation for zero-value review", func(t *testing.T) {
		var r review.Review

		assert.ErrorIs(t, r.Validate(), review.ErrReviewIsNotConstructed)
	})
}

func TestRestoreReview(t *testing.T) {
	t.Run("should carry the soft-delete marker", func(t *testing.T) {
		r, err := review.RestoreReview(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 2, true, true)

		require.NoError(t, err)
		assert.True(t, r.IsDeleted())
	})
}
