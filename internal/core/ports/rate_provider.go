package ports

import (
	"context"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/services"
)

// RateProvider is the read-only directory collaborator the core consumes:
// rate entries keyed by (city, courier) and courier existence checks. The
// core never mutates the directory.
type RateProvider interface {
	// RateFor returns the rate entry for a city/courier pair. A missing
	// entry fails with ErrRateNotFound; it never defaults to zero, since
	// zero fees would misstate an invoice.
	RateFor(ctx context.Context, cityID kernel.UUID, courierID *kernel.UUID) (services.Rate, error)

	// CourierExists reports whether a courier is present in the directory.
	CourierExists(ctx context.Context, courierID kernel.UUID) (bool, error)
}
