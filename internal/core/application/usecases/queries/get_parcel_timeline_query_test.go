package queries_test

import (
	"testing"

	"colis/internal/core/application/usecases/queries"
	"colis/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetParcelTimelineQuery_Valid(t *testing.T) {
	query, err := queries.NewGetParcelTimelineQuery("COL-12345")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "COL-12345", query.TrackingCode())
}

func TestNewGetParcelTimelineQuery_EmptyTrackingCode(t *testing.T) {
	_, err := queries.NewGetParcelTimelineQuery("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetParcelTimelineQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetParcelTimelineQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetParcelTimelineQueryIsNotConstructed)
}
