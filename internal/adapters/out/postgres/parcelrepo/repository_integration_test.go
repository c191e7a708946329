package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
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

// ParcelRepositoryIntegrationTestSuite provides integration tests for
// ParcelRepository using PostgreSQL containers, with particular focus on the
// conditional update semantics that back concurrent assignment and status
// transitions.
type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *parcelrepo.GormParcelRepository
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&parcelrepo.StatusHistoryEntryDTO{},
		&parcelrepo.ProofOfDeliveryDTO{},
	))
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE parcels, parcel_status_history, proofs_of_delivery").Error)

	suite.repository = parcelrepo.NewGormParcelRepository(suite.db, stubAggregateTracker{})
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) createTestParcel(trackingNumber string) *parcel.Parcel {
	senderID := kernel.NewUUID()
	recipientID := kernel.NewUUID()

	p, err := parcel.NewParcel(
		kernel.NewUUID(), trackingNumber, &senderID, &recipientID, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return p
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("TRK00000001AAAAAA")
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	loaded, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(testParcel))
	suite.Equal("TRK00000001AAAAAA", loaded.TrackingNumber())
	suite.Equal(parcel.Pending, loaded.Status())
	suite.Require().NotNil(loaded.Sender())
	suite.True(loaded.Sender().IsEqual(*testParcel.Sender()))
	suite.Require().NotNil(loaded.Recipient())
	suite.True(loaded.Recipient().IsEqual(*testParcel.Recipient()))
	suite.Nil(loaded.Driver())
	suite.Empty(loaded.History())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdateConditional_PersistsStatusAndHistoryAtomically() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("TRK00000002AAAAAA")
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	driverID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(testParcel.Assign(driverID, actorID, "first batch", now))

	err := suite.repository.UpdateConditional(ctx, testParcel, parcel.Pending, nil)
	suite.Require().NoError(err)

	loaded, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	suite.Equal(parcel.Assigned, loaded.Status())
	suite.Require().NotNil(loaded.Driver())
	suite.True(loaded.Driver().IsEqual(driverID))
	suite.Require().NotNil(loaded.AssignedAt())

	suite.Require().Len(loaded.History(), 1)
	entry := loaded.History()[0]
	suite.Equal(parcel.Assigned, entry.Status())
	suite.True(entry.Actor().IsEqual(actorID))
	suite.Equal("first batch", entry.Note())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdateConditional_StalePredicateLoses() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("TRK00000003AAAAAA")
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	// Two requests read the same pending parcel.
	first, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(first.Assign(kernel.NewUUID(), kernel.NewUUID(), "", now))
	suite.Require().NoError(second.Assign(kernel.NewUUID(), kernel.NewUUID(), "", now))

	// The first write wins, the second hits a stale predicate.
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, first, parcel.Pending, nil))

	err = suite.repository.UpdateConditional(ctx, second, parcel.Pending, nil)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConcurrencyConflict)

	// The loser left neither a row change nor a history entry behind.
	loaded, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.Driver())
	suite.True(loaded.Driver().IsEqual(*first.Driver()))
	suite.Len(loaded.History(), 1)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdateConditional_CancellationClearsDriver() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("TRK00000004AAAAAA")
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	driverID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(testParcel.Assign(driverID, kernel.NewUUID(), "", now))
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testParcel, parcel.Pending, nil))

	suite.Require().NoError(testParcel.TransitionTo(parcel.Cancelled, kernel.NewUUID(), nil, "changed mind", now))
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testParcel, parcel.Assigned, &driverID))

	loaded, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	// driver_id and assigned_at must come back as NULL, not stale values.
	suite.Equal(parcel.Cancelled, loaded.Status())
	suite.Nil(loaded.Driver())
	suite.Nil(loaded.AssignedAt())
	suite.Len(loaded.History(), 2)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetHistory_OrderedOldestFirst() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("TRK00000005AAAAAA")
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	driverID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	suite.Require().NoError(testParcel.Assign(driverID, kernel.NewUUID(), "", base))
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testParcel, parcel.Pending, nil))

	location, err := kernel.NewGeoPoint(48.8566, 2.3522)
	suite.Require().NoError(err)
	suite.Require().NoError(testParcel.TransitionTo(parcel.PickedUp, driverID, &location, "", base.Add(time.Minute)))
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testParcel, parcel.Assigned, &driverID))

	suite.Require().NoError(testParcel.TransitionTo(parcel.InTransit, driverID, nil, "", base.Add(2*time.Minute)))
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testParcel, parcel.PickedUp, &driverID))

	entries, err := suite.repository.GetHistory(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)

	suite.Equal(parcel.Assigned, entries[0].Status())
	suite.Equal(parcel.PickedUp, entries[1].Status())
	suite.Equal(parcel.InTransit, entries[2].Status())

	suite.Require().NotNil(entries[1].Location())
	suite.True(entries[1].Location().IsEqual(location))
	suite.Nil(entries[2].Location())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestTrackingNumberExists() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("TRK00000006AAAAAA")
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	exists, err := suite.repository.TrackingNumberExists(ctx, "TRK00000006AAAAAA")
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.repository.TrackingNumberExists(ctx, "TRK99999999ZZZZZZ")
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetByTrackingNumber() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("TRK00000007AAAAAA")
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	loaded, err := suite.repository.GetByTrackingNumber(ctx, "TRK00000007AAAAAA")
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testParcel))

	_, err = suite.repository.GetByTrackingNumber(ctx, "TRK99999999ZZZZZZ")
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestConfirmedDeliveryWithProof() {
	ctx := context.Background()

	recipientID := kernel.NewUUID()
	senderID := kernel.NewUUID()
	created := time.Now().UTC().Truncate(time.Microsecond)

	testParcel, err := parcel.NewParcel(kernel.NewUUID(), "TRK00000008AAAAAA", &senderID, &recipientID, created)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testParcel))

	driverID := kernel.NewUUID()
	now := created.Add(time.Hour)
	suite.Require().NoError(testParcel.Assign(driverID, kernel.NewUUID(), "", now))
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testParcel, parcel.Pending, nil))
	suite.Require().NoError(testParcel.TransitionTo(parcel.PickedUp, driverID, nil, "", now))
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testParcel, parcel.Assigned, &driverID))
	suite.Require().NoError(testParcel.TransitionTo(parcel.InTransit, driverID, nil, "", now))
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testParcel, parcel.PickedUp, &driverID))
	suite.Require().NoError(testParcel.TransitionTo(parcel.DeliveredToRecipient, driverID, nil, "", now))
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testParcel, parcel.InTransit, &driverID))

	confirmedAt := created.Add(2 * time.Hour)
	suite.Require().NoError(testParcel.ConfirmDelivery(recipientID, "thanks", confirmedAt))

	proof, err := parcel.NewProofOfDelivery(testParcel.ID(), recipientID, "sig", "thanks", confirmedAt)
	suite.Require().NoError(err)

	suite.Require().NoError(
		suite.repository.UpdateConditional(ctx, testParcel, parcel.DeliveredToRecipient, &driverID))
	suite.Require().NoError(suite.repository.AddProofOfDelivery(ctx, proof))

	loaded, err := suite.repository.Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	suite.Equal(parcel.Delivered, loaded.Status())
	suite.Require().NotNil(loaded.ConfirmedBy())
	suite.True(loaded.ConfirmedBy().IsEqual(recipientID))
	suite.Require().NotNil(loaded.DeliveryConfirmedAt())
	suite.Equal(2*time.Hour, loaded.DeliveryDuration())
	suite.Equal(1, loaded.DeliveryAttempts())
	suite.True(loaded.IsDeliveredToRecipient())
	suite.Len(loaded.History(), 5)

	var proofCount int64
	suite.Require().NoError(suite.db.Model(&parcelrepo.ProofOfDeliveryDTO{}).
		Where("parcel_id = ?", testParcel.ID().Bytes()).Count(&proofCount).Error)
	suite.Equal(int64(1), proofCount)
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
