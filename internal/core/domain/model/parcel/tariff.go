package parcel

import (
	"errors"

	"colis/internal/core/domain/model/kernel"
)

// ErrTariffTotalMismatch is returned when a tariff's total fee does not
// equal the sum of its components.
var ErrTariffTotalMismatch = errors.New("tariff total fee must equal the sum of its components")

// Tariff is the CRBT breakdown attached to a parcel: the automatic fees,
// the manual extra fee, their total, and the amount payable to the
// merchant. It is derived data, recomputed whenever the status or the
// extra-fee inputs change.
type Tariff struct {
	DeliveryFee       kernel.Money
	RefusalFee        kernel.Money
	FragileSurcharge  kernel.Money
	ExtraFee          kernel.Money
	TotalFee          kernel.Money
	PayableToMerchant kernel.Money
}

// Validate checks the breakdown invariant:
// totalFee = deliveryFee + refusalFee + fragileSurcharge + extraFee.
func (t Tariff) Validate() error {
	sum := t.DeliveryFee.Add(t.RefusalFee).Add(t.FragileSurcharge).Add(t.ExtraFee)
	if !t.TotalFee.IsEqual(sum) {
		return ErrTariffTotalMismatch
	}
	return nil
}

// ExtraFee (tarif ajouter) is an ad-hoc fee manually attached by an
// operator. It is independent of the automatic fee computation and feeds
// additively into the tariff's total.
type ExtraFee struct {
	Value       kernel.Money
	Description string
}

// IsZero reports whether no extra fee is attached.
func (f ExtraFee) IsZero() bool {
	return f.Value.IsZero() && f.Description == ""
}
