package driverrepo_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/adapters/out/postgres/driverrepo"
	"parcels/internal/adapters/out/postgres/reviewrepo"
	"parcels/internal/core/domain/model/driver"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/review"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// stubAggregateTracker is a no-op implementation of the aggregateTracker interface.
type stubAggregateTracker struct{}

func (stubAggregateTracker) TrackAggregate(_ kernel.UUID, _ interface{}) {}

// DriverRepositoryIntegrationTestSuite provides integration tests for the
// driver repository and the review read path feeding rating recomputation.
type DriverRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *driverrepo.GormDriverRepository
	reviewRepo *reviewrepo.GormReviewRepository
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&driverrepo.DriverDTO{}, &reviewrepo.ReviewDTO{}))
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drivers, reviews").Error)

	suite.repository = driverrepo.NewGormDriverRepository(suite.db, stubAggregateTracker{})
	suite.reviewRepo = reviewrepo.NewGormReviewRepository(suite.db)
}

func (suite *DriverRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testDriver, err := driver.NewDriver(kernel.NewUUID(), "John Doe")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testDriver))

	loaded, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(testDriver))
	suite.Equal("John Doe", loaded.Name())
	suite.True(loaded.IsAssignable())
	suite.Zero(loaded.RatingAverage())
	suite.Zero(loaded.RatingCount())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_RatingResetSticks() {
	ctx := context.Background()

	testDriver, err := driver.RestoreDriver(kernel.NewUUID(), "John Doe", true, true, false, 4.50, 2)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testDriver))

	// All reviews withdrawn: the aggregate goes back to zero and the zero
	// values must actually reach the database.
	suite.Require().NoError(testDriver.RecalculateRating(nil))
	suite.Require().NoError(suite.repository.Update(ctx, testDriver))

	loaded, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Zero(loaded.RatingAverage())
	suite.Zero(loaded.RatingCount())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGet_SoftDeletedIsAbsent() {
	ctx := context.Background()

	testDriver, err := driver.RestoreDriver(kernel.NewUUID(), "John Doe", true, true, true, 0, 0)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testDriver))

	_, err = suite.repository.Get(ctx, testDriver.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	all, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Empty(all)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGetPublicRatingsByReviewee_FiltersHiddenAndDeleted() {
	ctx := context.Background()

	revieweeID := kernel.NewUUID()

	addReview := func(rating int, isPublic, isDeleted bool) {
		entity, err := review.RestoreReview(
			kernel.NewUUID(), revieweeID, kernel.NewUUID(), rating, isPublic, isDeleted)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.reviewRepo.Add(ctx, entity))
	}

	addReview(5, true, false)
	addReview(4, true, false)
	addReview(1, false, false) // hidden
	addReview(1, true, true)   // deleted
	// Review about someone else entirely.
	other, err := review.NewReview(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 2, true)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.reviewRepo.Add(ctx, other))

	ratings, err := suite.reviewRepo.GetPublicRatingsByReviewee(ctx, revieweeID)
	suite.Require().NoError(err)
	suite.ElementsMatch([]int{5, 4}, ratings)
}

func TestDriverRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DriverRepositoryIntegrationTestSuite))
}
