package invoice

import (
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"
)

// Totals is the derived sum block of an invoice. Every field is the
// pointwise sum over the invoice's current parcel refs; NetPayable branches
// on the invoice kind.
type Totals struct {
	TotalPrice            kernel.Money
	TotalDeliveryFee      kernel.Money
	TotalFragileSurcharge kernel.Money
	TotalExtraFee         kernel.Money
	TotalRefusalFee       kernel.Money
	NetPayable            kernel.Money
}

// BillingItem is the per-parcel billing snapshot totals are computed from.
// CourierRate is the flat per-parcel payout used for courier invoices; it
// is ignored on the merchant side.
type BillingItem struct {
	TrackingCode string
	Price        kernel.Money
	Tariff       parcel.Tariff
	CourierRate  kernel.Money
}

// ComputeTotals sums the billing items into an invoice total block.
//
// The net payable deliberately differs by kind: merchant invoices pay
// Σ payableToMerchant (price minus fees per parcel), while courier invoices
// pay a flat per-parcel courier rate regardless of parcel price. Reusing
// one formula for both sides is a known billing defect in this domain.
//
// Callers pass one item per unique tracking code; a duplicated code across
// merged sources must not be double-counted.
func ComputeTotals(kind Kind, items []BillingItem) Totals {
	t := Totals{
		TotalPrice:            kernel.ZeroMoney(),
		TotalDeliveryFee:      kernel.ZeroMoney(),
		TotalFragileSurcharge: kernel.ZeroMoney(),
		TotalExtraFee:         kernel.ZeroMoney(),
		TotalRefusalFee:       kernel.ZeroMoney(),
		NetPayable:            kernel.ZeroMoney(),
	}

	for _, item := range items {
		t.TotalPrice = t.TotalPrice.Add(item.Price)
		t.TotalDeliveryFee = t.TotalDeliveryFee.Add(item.Tariff.DeliveryFee)
		t.TotalFragileSurcharge = t.TotalFragileSurcharge.Add(item.Tariff.FragileSurcharge)
		t.TotalExtraFee = t.TotalExtraFee.Add(item.Tariff.ExtraFee)
		t.TotalRefusalFee = t.TotalRefusalFee.Add(item.Tariff.RefusalFee)

		switch kind {
		case KindMerchant:
			t.NetPayable = t.NetPayable.Add(item.Tariff.PayableToMerchant)
		case KindCourier:
			t.NetPayable = t.NetPayable.Add(item.CourierRate)
		}
	}

	return t
}

// IsEqual reports whether two total blocks agree on every field. Used to
// detect drift between cached and recomputed totals.
func (t Totals) IsEqual(other Totals) bool {
	return t.TotalPrice.IsEqual(other.TotalPrice) &&
		t.TotalDeliveryFee.IsEqual(other.TotalDeliveryFee) &&
		t.TotalFragileSurcharge.IsEqual(other.TotalFragileSurcharge) &&
		t.TotalExtraFee.IsEqual(other.TotalExtraFee) &&
		t.TotalRefusalFee.IsEqual(other.TotalRefusalFee) &&
		t.NetPayable.IsEqual(other.NetPayable)
}
