package errs_test

import (
	"errors"
	"testing"

	"colis/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("parcelCode", "TRK-123")

		assert.Equal(t, "parcelCode", err.ParamName)
		assert.Equal(t, "TRK-123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: TRK-123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("invoiceCode", "FAC-9", cause)

		assert.Equal(t, "invoiceCode", err.ParamName)
		assert.Equal(t, "FAC-9", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: invoiceCode, ID is: FAC-9 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("status", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: status (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("trackingCode")

		assert.Equal(t, "trackingCode", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: trackingCode", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("trackingCode", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: trackingCode (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestTransitionNotAllowedError(t *testing.T) {
	err := errs.NewTransitionNotAllowedError("courier", "New", "Delivered")

	assert.Equal(t, "courier", err.Role)
	assert.Equal(t, "New", err.From)
	assert.Equal(t, "Delivered", err.To)
	assert.Equal(t, "transition not allowed: role courier cannot move parcel from New to Delivered", err.Error())
	assert.Equal(t, errs.ErrTransitionNotAllowed, err.Unwrap())
}

func TestMissingRequiredFieldError(t *testing.T) {
	err := errs.NewMissingRequiredFieldError("date", "Scheduled")

	assert.Equal(t, "date", err.FieldName)
	assert.Equal(t, "Scheduled", err.Status)
	assert.Equal(t, "missing required field: status Scheduled requires date", err.Error())
	assert.Equal(t, errs.ErrMissingRequiredField, err.Unwrap())
}

func TestRateNotFoundError(t *testing.T) {
	err := errs.NewRateNotFoundError("city-1", "courier-2")

	assert.Equal(t, "city-1", err.CityID)
	assert.Equal(t, "courier-2", err.CourierID)
	assert.Equal(t, "rate not found: city city-1, courier courier-2", err.Error())
	assert.Equal(t, errs.ErrRateNotFound, err.Unwrap())
}

func TestConcurrentModificationError(t *testing.T) {
	err := errs.NewConcurrentModificationError("parcelCode", "TRK-7")

	assert.Equal(t, "parcelCode", err.ParamName)
	assert.Equal(t, "TRK-7", err.ID)
	assert.Equal(t, "concurrent modification: param is: parcelCode, ID is: TRK-7", err.Error())
	assert.Equal(t, errs.ErrConcurrentModification, err.Unwrap())
}

func TestCollaboratorUnavailableError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewCollaboratorUnavailableError("parcel lookup", cause)

		assert.Equal(t, "parcel lookup", err.Operation)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "collaborator unavailable: parcel lookup (cause: connection reset)", err.Error())
		assert.Equal(t, errs.ErrCollaboratorUnavailable, err.Unwrap())
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewCollaboratorUnavailableError("rate lookup", nil)
		assert.Equal(t, "collaborator unavailable: rate lookup", err.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("parcelCode", "X"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("status"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsRequiredError("code"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewTransitionNotAllowedError("admin", "New", "Closed"), errs.ErrTransitionNotAllowed)
		require.ErrorIs(t, errs.NewMissingRequiredFieldError("comment", "Refused"), errs.ErrMissingRequiredField)
		require.ErrorIs(t, errs.NewRateNotFoundError("c", "l"), errs.ErrRateNotFound)
		require.ErrorIs(t, errs.NewConcurrentModificationError("parcelCode", "X"), errs.ErrConcurrentModification)
		require.ErrorIs(t, errs.NewCollaboratorUnavailableError("op", nil), errs.ErrCollaboratorUnavailable)
	})
}
