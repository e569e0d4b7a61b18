package invoicerepo

import (
	"context"
	"errors"

	"colis/internal/core/domain/model/invoice"
	"colis/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormInvoiceRepository creates a new GORM invoice repository.
func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new invoice to the database.
func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.InvoiceCode(), aggregate)
	return nil
}

// Update saves an existing invoice using optimistic concurrency, matching
// on the version the aggregate was loaded with.
func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Where("invoice_code = ? AND version = ?", dto.InvoiceCode, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&InvoiceDTO{}).
			Where("invoice_code = ?", dto.InvoiceCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("invoice", dto.InvoiceCode)
		}
		return errs.NewConcurrentModificationError("invoice", dto.InvoiceCode)
	}

	r.tracker.TrackAggregate(aggregate.InvoiceCode(), aggregate)
	return nil
}

// GetByCode retrieves an invoice by its code.
func (r *GormInvoiceRepository) GetByCode(ctx context.Context, invoiceCode string) (*invoice.Invoice, error) {
	if invoiceCode == "" {
		return nil, errs.NewValueIsRequiredError("invoiceCode")
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "invoice_code = ?", invoiceCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", invoiceCode)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveCodes returns the codes of all active invoices.
func (r *GormInvoiceRepository) GetActiveCodes(ctx context.Context) ([]string, error) {
	codes := make([]string, 0)
	if err := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Where("active").
		Order("invoice_code").
		Pluck("invoice_code", &codes).Error; err != nil {
		return nil, err
	}

	return codes, nil
}
