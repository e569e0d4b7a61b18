package commands

import (
	"context"

	"colis/internal/core/domain/model/parcel"
	"colis/internal/core/domain/services"
	"colis/internal/core/ports"
)

// recomputeTariff refreshes a parcel's CRBT breakdown from the directory
// rate entry for its city/courier pair. A missing entry propagates
// ErrRateNotFound and leaves the parcel's tariff as it was.
func recomputeTariff(ctx context.Context, rates ports.RateProvider, p *parcel.Parcel) error {
	rate, err := rates.RateFor(ctx, p.CityID(), p.CourierID())
	if err != nil {
		return err
	}

	tariff, err := services.NewTariffCalculator().Calculate(p, rate)
	if err != nil {
		return err
	}

	return p.SetTariff(tariff)
}
