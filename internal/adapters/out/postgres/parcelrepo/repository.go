package parcelrepo

import (
	"context"
	"errors"

	"colis/internal/core/domain/model/parcel"
	"colis/internal/core/ports"
	"colis/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.TrackingCode(), aggregate)
	return nil
}

// Update saves an existing parcel using optimistic concurrency. The write
// only lands when the stored version still matches the one the aggregate
// was loaded with; the row's version is bumped in the same statement.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("tracking_code = ? AND version = ?", dto.TrackingCode, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err = r.db.WithContext(ctx).
			Model(&ParcelDTO{}).
			Where("tracking_code = ?", dto.TrackingCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("parcel", dto.TrackingCode)
		}
		return errs.NewConcurrentModificationError("parcel", dto.TrackingCode)
	}

	r.tracker.TrackAggregate(aggregate.TrackingCode(), aggregate)
	return nil
}

// GetByTrackingCode retrieves a parcel by its tracking code.
func (r *GormParcelRepository) GetByTrackingCode(ctx context.Context, trackingCode string) (*parcel.Parcel, error) {
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("trackingCode")
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", trackingCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", trackingCode)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingCodes retrieves the parcels matching the given codes. Codes
// with no row are absent from the result.
func (r *GormParcelRepository) GetByTrackingCodes(ctx context.Context, trackingCodes []string) ([]*parcel.Parcel, error) {
	if len(trackingCodes) == 0 {
		return []*parcel.Parcel{}, nil
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "tracking_code IN ?", trackingCodes).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// FindForInvoice retrieves the non-archived parcels matching an invoice
// filter, ordered by tracking code.
func (r *GormParcelRepository) FindForInvoice(ctx context.Context, filter ports.ParcelFilter) ([]*parcel.Parcel, error) {
	q := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("NOT archived")

	if filter.MerchantID != nil {
		q = q.Where("merchant_id = ?", filter.MerchantID.Bytes())
	}
	if filter.CourierID != nil {
		q = q.Where("courier_id = ?", filter.CourierID.Bytes())
	}
	if !filter.From.IsZero() {
		q = q.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("created_at <= ?", filter.To)
	}
	if len(filter.StatusIn) > 0 {
		statuses := make([]int, 0, len(filter.StatusIn))
		for _, s := range filter.StatusIn {
			statuses = append(statuses, int(s))
		}
		q = q.Where("status IN ?", statuses)
	}

	var dtos []ParcelDTO
	if err := q.Order("tracking_code").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []ParcelDTO) ([]*parcel.Parcel, error) {
	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}
