package invoice_test

import (
	"testing"

	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
)

func billingItem(code string, price, deliveryFee, courierRate float64) invoice.BillingItem {
	total := kernel.MoneyFromFloat(deliveryFee)
	return invoice.BillingItem{
		TrackingCode: code,
		Price:        kernel.MoneyFromFloat(price),
		Tariff: parcel.Tariff{
			DeliveryFee:       kernel.MoneyFromFloat(deliveryFee),
			RefusalFee:        kernel.ZeroMoney(),
			FragileSurcharge:  kernel.ZeroMoney(),
			ExtraFee:          kernel.ZeroMoney(),
			TotalFee:          total,
			PayableToMerchant: kernel.MoneyFromFloat(price).Sub(total),
		},
		CourierRate: kernel.MoneyFromFloat(courierRate),
	}
}

func TestComputeTotals(t *testing.T) {
	items := []invoice.BillingItem{
		billingItem("COL-1", 100, 30, 12),
		billingItem("COL-2", 250, 30, 12),
	}

	t.Run("merchant invoices pay price minus fees", func(t *testing.T) {
		totals := invoice.ComputeTotals(invoice.KindMerchant, items)

		assert.True(t, totals.TotalPrice.IsEqual(kernel.MoneyFromFloat(350)))
		assert.True(t, totals.TotalDeliveryFee.IsEqual(kernel.MoneyFromFloat(60)))
		// (100-30) + (250-30)
		assert.True(t, totals.NetPayable.IsEqual(kernel.MoneyFromFloat(290)))
	})

	t.Run("courier invoices pay a flat rate per parcel", func(t *testing.T) {
		totals := invoice.ComputeTotals(invoice.KindCourier, items)

		// flat 12 per parcel, regardless of parcel price
		assert.True(t, totals.NetPayable.IsEqual(kernel.MoneyFromFloat(24)))
		// the fee block is still reported for audit
		assert.True(t, totals.TotalDeliveryFee.IsEqual(kernel.MoneyFromFloat(60)))
	})

	t.Run("no items yields all-zero totals", func(t *testing.T) {
		totals := invoice.ComputeTotals(invoice.KindMerchant, nil)

		assert.True(t, totals.TotalPrice.IsZero())
		assert.True(t, totals.NetPayable.IsZero())
	})
}

func TestTotals_IsEqual(t *testing.T) {
	a := invoice.ComputeTotals(invoice.KindMerchant, []invoice.BillingItem{billingItem("COL-1", 100, 30, 12)})
	b := invoice.ComputeTotals(invoice.KindMerchant, []invoice.BillingItem{billingItem("COL-1", 100, 30, 12)})
	c := invoice.ComputeTotals(invoice.KindMerchant, []invoice.BillingItem{billingItem("COL-1", 100, 25, 12)})

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
