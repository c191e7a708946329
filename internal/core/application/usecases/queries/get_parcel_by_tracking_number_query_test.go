package queries_test

import (
	"testing"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetParcelByTrackingNumberQuery_Valid(t *testing.T) {
	query, err := queries.NewGetParcelByTrackingNumberQuery("TRK12345678ABCDEF")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "TRK12345678ABCDEF", query.TrackingNumber())
}

func TestNewGetParcelByTrackingNumberQuery_EmptyNumber(t *testing.T) {
	_, err := queries.NewGetParcelByTrackingNumberQuery("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetParcelByTrackingNumberQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetParcelByTrackingNumberQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetParcelByTrackingNumberQueryIsNotConstructed)
}
