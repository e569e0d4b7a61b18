// Package invoicerepo implements invoice persistence on PostgreSQL via
// GORM. Parcel refs and duplicate annotations are stored as text arrays,
// totals as fixed-point decimals.
package invoicerepo

import (
	"time"

	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// InvoiceDTO is the database representation of an invoice aggregate.
type InvoiceDTO struct {
	InvoiceCode string         `gorm:"primaryKey"`
	Kind        string         `gorm:"index"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;index"`
	ParcelRefs  pq.StringArray `gorm:"type:text[]"`

	TotalPrice            decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalDeliveryFee      decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalFragileSurcharge decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalExtraFee         decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalRefusalFee       decimal.Decimal `gorm:"type:decimal(12,2)"`
	NetPayable            decimal.Decimal `gorm:"type:decimal(12,2)"`

	DuplicateCodes pq.StringArray `gorm:"type:text[]"`

	Paid      bool
	Active    bool `gorm:"index"`
	CreatedAt time.Time
	Version   int
}

// TableName overrides GORM's default naming to use "invoices".
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// fromDomain converts an invoice aggregate to its database representation.
func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	totals := inv.Totals()

	return InvoiceDTO{
		InvoiceCode: inv.InvoiceCode(),
		Kind:        string(inv.Kind()),
		OwnerID:     inv.OwnerID().Bytes(),
		ParcelRefs:  inv.ParcelRefs(),

		TotalPrice:            totals.TotalPrice.Decimal(),
		TotalDeliveryFee:      totals.TotalDeliveryFee.Decimal(),
		TotalFragileSurcharge: totals.TotalFragileSurcharge.Decimal(),
		TotalExtraFee:         totals.TotalExtraFee.Decimal(),
		TotalRefusalFee:       totals.TotalRefusalFee.Decimal(),
		NetPayable:            totals.NetPayable.Decimal(),

		DuplicateCodes: inv.DuplicateCodes(),

		Paid:      inv.IsPaid(),
		Active:    inv.IsActive(),
		CreatedAt: inv.CreatedAt(),
		Version:   inv.Version(),
	}
}

// toDomain converts a database row back into an invoice aggregate using
// RestoreInvoice.
func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	totals := invoice.Totals{
		TotalPrice:            kernel.NewMoney(dto.TotalPrice),
		TotalDeliveryFee:      kernel.NewMoney(dto.TotalDeliveryFee),
		TotalFragileSurcharge: kernel.NewMoney(dto.TotalFragileSurcharge),
		TotalExtraFee:         kernel.NewMoney(dto.TotalExtraFee),
		TotalRefusalFee:       kernel.NewMoney(dto.TotalRefusalFee),
		NetPayable:            kernel.NewMoney(dto.NetPayable),
	}

	return invoice.RestoreInvoice(
		dto.InvoiceCode,
		invoice.Kind(dto.Kind),
		ownerID,
		dto.ParcelRefs,
		totals,
		dto.DuplicateCodes,
		dto.Paid,
		dto.Active,
		dto.CreatedAt,
		dto.Version,
	)
}
