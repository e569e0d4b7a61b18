package services

import (
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"
)

// Rate is one directory rate entry for a (city, courier) pair. Delivery,
// Refusal and Fragile feed the CRBT breakdown; CourierRate is the flat
// per-parcel payout used when settling the courier side.
type Rate struct {
	Delivery    kernel.Money
	Refusal     kernel.Money
	Fragile     kernel.Money
	CourierRate kernel.Money
}

// TariffCalculator computes the CRBT breakdown for one parcel from its
// attributes, its current status and the directory rate entry.
//
// Fee rules:
//   - Delivered bills the delivery fee, no refusal fee
//   - Refused/Cancelled/Returned bill the refusal fee, no delivery fee
//   - any other status leaves both automatic fees at zero: the calculator
//     only finalizes once the status reaches a terminal class
//   - the fragile surcharge applies whenever the parcel is flagged fragile
//   - the extra fee is copied verbatim from the parcel, never derived
//
// The calculator is stateless; missing rate entries are the caller's
// failure to surface (the parcel's previous tariff must stay untouched).
type TariffCalculator struct{}

// NewTariffCalculator creates a TariffCalculator.
func NewTariffCalculator() TariffCalculator {
	return TariffCalculator{}
}

// Calculate returns the tariff breakdown for the parcel under the given
// rate entry. The result satisfies the breakdown invariant
// totalFee = deliveryFee + refusalFee + fragileSurcharge + extraFee,
// and payableToMerchant = price − totalFee.
func (c TariffCalculator) Calculate(p *parcel.Parcel, rate Rate) (parcel.Tariff, error) {
	if err := p.Validate(); err != nil {
		return parcel.Tariff{}, err
	}

	deliveryFee := kernel.ZeroMoney()
	refusalFee := kernel.ZeroMoney()

	status := p.Status()
	switch {
	case status == parcel.Delivered:
		deliveryFee = rate.Delivery
	case status.IsRefusalClass():
		refusalFee = rate.Refusal
	}

	fragileSurcharge := kernel.ZeroMoney()
	if p.IsFragile() {
		fragileSurcharge = rate.Fragile
	}

	extraFee := p.ExtraFee().Value

	totalFee := deliveryFee.Add(refusalFee).Add(fragileSurcharge).Add(extraFee)

	return parcel.Tariff{
		DeliveryFee:       deliveryFee,
		RefusalFee:        refusalFee,
		FragileSurcharge:  fragileSurcharge,
		ExtraFee:          extraFee,
		TotalFee:          totalFee,
		PayableToMerchant: p.Price().Sub(totalFee),
	}, nil
}
