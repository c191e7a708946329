package commands_test

import (
	"testing"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newHandedOverParcel builds a parcel in delivered_to_recipient status with
// the given recipient.
func newHandedOverParcel(t *testing.T, recipientID kernel.UUID) *parcel.Parcel {
	t.Helper()

	p, err := parcel.NewParcel(kernel.NewUUID(), "TRK12345678ABCDEF", nil, &recipientID, time.Now().UTC())
	require.NoError(t, err)

	driverID := kernel.NewUUID()
	now := time.Now().UTC()
	require.NoError(t, p.Assign(driverID, kernel.NewUUID(), "", now))
	require.NoError(t, p.TransitionTo(parcel.PickedUp, driverID, nil, "", now))
	require.NoError(t, p.TransitionTo(parcel.InTransit, driverID, nil, "", now))
	require.NoError(t, p.TransitionTo(parcel.DeliveredToRecipient, driverID, nil, "", now))
	return p
}

func TestConfirmDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	recipientID := kernel.NewUUID()
	testParcel := newHandedOverParcel(t, recipientID)

	cmd, err := commands.NewConfirmDeliveryCommand(testParcel.ID(), recipientID, "sig-data", "all good")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockParcelUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, testParcel.ID()).Return(testParcel, nil).Once(),
		parcelRepo.On("UpdateConditional", ctx, mock.AnythingOfType("*parcel.Parcel"), parcel.DeliveredToRecipient, mock.AnythingOfType("*kernel.UUID")).
			Return(nil).
			Once(),
		parcelRepo.On("AddProofOfDelivery", ctx, mock.AnythingOfType("parcel.ProofOfDelivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, parcel.Delivered, updated.Status())
	require.NotNil(t, updated.ConfirmedBy())
	assert.True(t, updated.ConfirmedBy().IsEqual(recipientID))
	assert.NotNil(t, updated.DeliveryConfirmedAt())
	assert.Positive(t, updated.DeliveryDuration())

	// The proof record matches the confirmation.
	proofCall := parcelRepo.Calls[2]
	proof := proofCall.Arguments[1].(parcel.ProofOfDelivery)
	assert.True(t, proof.ParcelID().IsEqual(testParcel.ID()))
	assert.True(t, proof.Recipient().IsEqual(recipientID))
	assert.Equal(t, "sig-data", proof.Signature())
	assert.Equal(t, "all good", proof.Note())

	parcelRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestConfirmDeliveryCommandHandler_Handle_ActorIsNotRecipient(t *testing.T) {
	ctx := t.Context()

	recipientID := kernel.NewUUID()
	testParcel := newHandedOverParcel(t, recipientID)

	stranger := kernel.NewUUID()
	cmd, err := commands.NewConfirmDeliveryCommand(testParcel.ID(), stranger, "", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockParcelUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, testParcel.ID()).Return(testParcel, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrActorIsNotRecipient)
	assert.Equal(t, parcel.DeliveredToRecipient, testParcel.Status())
	parcelRepo.AssertNotCalled(t, "UpdateConditional")
	parcelRepo.AssertNotCalled(t, "AddProofOfDelivery")
}

func TestConfirmDeliveryCommandHandler_Handle_NotHandedOverYet(t *testing.T) {
	ctx := t.Context()

	recipientID := kernel.NewUUID()
	testParcel, err := parcel.NewParcel(kernel.NewUUID(), "TRK12345678ABCDEF", nil, &recipientID, time.Now().UTC())
	require.NoError(t, err)

	cmd, err := commands.NewConfirmDeliveryCommand(testParcel.ID(), recipientID, "", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockParcelUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, testParcel.ID()).Return(testParcel, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, parcel.ErrInvalidTransition)
	parcelRepo.AssertNotCalled(t, "AddProofOfDelivery")
}

func TestConfirmDeliveryCommandHandler_Handle_NoRecipientOnParcel(t *testing.T) {
	ctx := t.Context()

	// Anonymous parcel: no recipient bound, so nobody can confirm.
	testParcel := newPendingParcel(t)

	cmd, err := commands.NewConfirmDeliveryCommand(testParcel.ID(), kernel.NewUUID(), "", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockParcelUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, testParcel.ID()).Return(testParcel, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrActorIsNotRecipient)
}
