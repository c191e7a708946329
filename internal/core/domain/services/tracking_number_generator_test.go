package services_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"parcels/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var trackingNumberPattern = regexp.MustCompile(`^TRK\d{8}[0-9A-Z]{6}$`)

// MockTrackingNumberProbe is a mock implementation of the TrackingNumberProbe interface.
type MockTrackingNumberProbe struct {
	mock.Mock
}

func (m *MockTrackingNumberProbe) TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error) {
	args := m.Called(ctx, trackingNumber)
	return args.Bool(0), args.Error(1)
}

func TestTrackingNumberGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("should produce prefixed timestamp plus base36 suffix", func(t *testing.T) {
		probe := new(MockTrackingNumberProbe)
		probe.On("TrackingNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

		generator := services.NewTrackingNumberGenerator(probe)
		trackingNumber, err := generator.Generate(ctx)

		require.NoError(t, err)
		assert.Regexp(t, trackingNumberPattern, trackingNumber)
		probe.AssertExpectations(t)
	})

	t.Run("should produce distinct numbers across calls", func(t *testing.T) {
		probe := new(MockTrackingNumberProbe)
		probe.On("TrackingNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil)

		generator := services.NewTrackingNumberGenerator(probe)

		seen := make(map[string]bool)
		for range 50 {
			trackingNumber, err := generator.Generate(ctx)
			require.NoError(t, err)
			assert.False(t, seen[trackingNumber], "duplicate tracking number %s", trackingNumber)
			seen[trackingNumber] = true
		}
	})

	t.Run("should retry once on collision", func(t *testing.T) {
		probe := new(MockTrackingNumberProbe)
		probe.On("TrackingNumberExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Once()
		probe.On("TrackingNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

		generator := services.NewTrackingNumberGenerator(probe)
		trackingNumber, err := generator.Generate(ctx)

		require.NoError(t, err)
		assert.Regexp(t, trackingNumberPattern, trackingNumber)
		probe.AssertNumberOfCalls(t, "TrackingNumberExists", 2)
	})

	t.Run("should give up after the retry budget", func(t *testing.T) {
		probe := new(MockTrackingNumberProbe)
		probe.On("TrackingNumberExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Times(10)

		generator := services.NewTrackingNumberGenerator(probe)
		trackingNumber, err := generator.Generate(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrTrackingNumberGenerationExhausted)
		assert.Empty(t, trackingNumber)
		probe.AssertExpectations(t)
	})

	t.Run("should propagate probe errors", func(t *testing.T) {
		probeErr := errors.New("connection refused")
		probe := new(MockTrackingNumberProbe)
		probe.On("TrackingNumberExists", ctx, mock.AnythingOfType("string")).Return(false, probeErr).Once()

		generator := services.NewTrackingNumberGenerator(probe)
		trackingNumber, err := generator.Generate(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, probeErr)
		assert.Empty(t, trackingNumber)
	})
}
