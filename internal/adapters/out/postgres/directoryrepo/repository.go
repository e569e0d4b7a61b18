package directoryrepo

import (
	"context"
	"errors"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/services"
	"colis/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDirectoryRepository implements RateProvider on the directory tables.
//
// A missing rate entry is a business condition and comes back as
// ErrRateNotFound. Any other database failure is reported as
// ErrCollaboratorUnavailable so that bulk callers can retry it.
type GormDirectoryRepository struct {
	db *gorm.DB
}

// NewGormDirectoryRepository creates a new directory repository.
func NewGormDirectoryRepository(db *gorm.DB) *GormDirectoryRepository {
	return &GormDirectoryRepository{db: db}
}

// RateFor returns the rate entry for a city, preferring a courier-specific
// row over the city-wide one.
func (r *GormDirectoryRepository) RateFor(
	ctx context.Context,
	cityID kernel.UUID,
	courierID *kernel.UUID,
) (services.Rate, error) {
	if err := cityID.Validate(); err != nil {
		return services.Rate{}, err
	}

	var dto RateDTO

	if courierID != nil {
		err := r.db.WithContext(ctx).
			First(&dto, "city_id = ? AND courier_id = ?", cityID.Bytes(), courierID.Bytes()).Error
		if err == nil {
			return rateFromDTO(dto), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return services.Rate{}, errs.NewCollaboratorUnavailableError("rate lookup", err)
		}
	}

	err := r.db.WithContext(ctx).
		First(&dto, "city_id = ? AND courier_id IS NULL", cityID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		courier := ""
		if courierID != nil {
			courier = courierID.String()
		}
		return services.Rate{}, errs.NewRateNotFoundError(cityID.String(), courier)
	}
	if err != nil {
		return services.Rate{}, errs.NewCollaboratorUnavailableError("rate lookup", err)
	}

	return rateFromDTO(dto), nil
}

// CourierExists reports whether the courier is present in the directory.
func (r *GormDirectoryRepository) CourierExists(ctx context.Context, courierID kernel.UUID) (bool, error) {
	if err := courierID.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", courierID.Bytes()).
		Count(&count).Error; err != nil {
		return false, errs.NewCollaboratorUnavailableError("courier lookup", err)
	}

	return count > 0, nil
}

func rateFromDTO(dto RateDTO) services.Rate {
	return services.Rate{
		Delivery:    kernel.NewMoney(dto.DeliveryFee),
		Refusal:     kernel.NewMoney(dto.RefusalFee),
		Fragile:     kernel.NewMoney(dto.FragileSurcharge),
		CourierRate: kernel.NewMoney(dto.CourierRate),
	}
}
