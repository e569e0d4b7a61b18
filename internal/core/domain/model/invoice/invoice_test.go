package invoice_test

import (
	"testing"
	"time"

	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()

	inv, err := invoice.NewInvoice(
		"FAC-0001",
		invoice.KindMerchant,
		kernel.NewUUID(),
		[]string{"COL-1", "COL-2"},
		invoice.Totals{},
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("should create an active unpaid invoice", func(t *testing.T) {
		inv := newTestInvoice(t)

		require.NoError(t, inv.Validate())
		assert.True(t, inv.IsActive())
		assert.False(t, inv.IsPaid())
		assert.Equal(t, []string{"COL-1", "COL-2"}, inv.ParcelRefs())
		assert.Empty(t, inv.DuplicateCodes())
		assert.Equal(t, 0, inv.Version())
	})

	t.Run("should accept an empty ref set", func(t *testing.T) {
		inv, err := invoice.NewInvoice(
			"FAC-0002", invoice.KindCourier, kernel.NewUUID(),
			nil, invoice.Totals{}, time.Now())

		require.NoError(t, err)
		assert.Empty(t, inv.ParcelRefs())
	})

	t.Run("should fail without an invoice code", func(t *testing.T) {
		_, err := invoice.NewInvoice(
			"", invoice.KindMerchant, kernel.NewUUID(),
			nil, invoice.Totals{}, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, invoice.ErrInvoiceCodeIsRequired)
	})

	t.Run("should fail with an unknown kind", func(t *testing.T) {
		_, err := invoice.NewInvoice(
			"FAC-0003", invoice.Kind("customs"), kernel.NewUUID(),
			nil, invoice.Totals{}, time.Now())

		require.Error(t, err)
	})
}

func TestInvoice_SetPaid(t *testing.T) {
	t.Run("should toggle the paid flag both ways", func(t *testing.T) {
		inv := newTestInvoice(t)

		require.NoError(t, inv.SetPaid(true))
		assert.True(t, inv.IsPaid())

		require.NoError(t, inv.SetPaid(false))
		assert.False(t, inv.IsPaid())
	})

	t.Run("should refuse to settle an inactive invoice", func(t *testing.T) {
		inv := newTestInvoice(t)
		inv.Deactivate()

		err := inv.SetPaid(true)

		require.Error(t, err)
		assert.ErrorIs(t, err, invoice.ErrInvoiceIsInactive)
	})
}

func TestInvoice_AnnotateDuplicates(t *testing.T) {
	inv := newTestInvoice(t)

	inv.AnnotateDuplicates([]string{"COL-2"})

	assert.Equal(t, []string{"COL-2"}, inv.DuplicateCodes())
	// refs keep the duplicated code, annotation never drops it
	assert.Contains(t, inv.ParcelRefs(), "COL-2")
}

func TestInvoice_Deactivate(t *testing.T) {
	inv := newTestInvoice(t)

	inv.Deactivate()

	assert.False(t, inv.IsActive())
}

func TestKind_Validate(t *testing.T) {
	assert.NoError(t, invoice.KindMerchant.Validate())
	assert.NoError(t, invoice.KindCourier.Validate())
	assert.Error(t, invoice.Kind("").Validate())
	assert.Error(t, invoice.Kind("customs").Validate())
}
