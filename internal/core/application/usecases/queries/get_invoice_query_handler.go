package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceTotalsRefresher re-derives the cached totals of an active invoice
// from the current state of its parcels, persisting them when they drifted.
type InvoiceTotalsRefresher interface {
	Refresh(ctx context.Context, invoiceCode string) error
}

// GetInvoiceQueryHandler serves the invoice read model. Totals are
// refreshed before reading so that tariff changes made after the invoice
// was built (extra fees, late refusals) are always reflected.
type GetInvoiceQueryHandler struct {
	db        *gorm.DB
	refresher InvoiceTotalsRefresher
}

// NewGetInvoiceQueryHandler creates a handler backed by a GORM connection
// and a totals refresher.
func NewGetInvoiceQueryHandler(db *gorm.DB, refresher InvoiceTotalsRefresher) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{db: db, refresher: refresher}
}

// Handle returns the invoice with freshly derived totals.
func (h GetInvoiceQueryHandler) Handle(ctx context.Context, query GetInvoiceQuery) (GetInvoiceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	if err := h.refresher.Refresh(ctx, query.InvoiceCode()); err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	var (
		kind             string
		ownerID          uuid.UUID
		parcelRefs       pq.StringArray
		duplicateCodes   pq.StringArray
		totalPrice       decimal.Decimal
		totalDeliveryFee decimal.Decimal
		totalFragile     decimal.Decimal
		totalExtraFee    decimal.Decimal
		totalRefusalFee  decimal.Decimal
		netPayable       decimal.Decimal
		paid, active     bool
		createdAt        time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			kind,
			owner_id,
			parcel_refs,
			duplicate_codes,
			total_price,
			total_delivery_fee,
			total_fragile_surcharge,
			total_extra_fee,
			total_refusal_fee,
			net_payable,
			paid,
			active,
			created_at
		FROM invoices
		WHERE invoice_code = ?
	`, query.InvoiceCode()).Row()

	err := row.Scan(
		&kind,
		&ownerID,
		&parcelRefs,
		&duplicateCodes,
		&totalPrice,
		&totalDeliveryFee,
		&totalFragile,
		&totalExtraFee,
		&totalRefusalFee,
		&netPayable,
		&paid,
		&active,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetInvoiceQueryResponse{}, errs.NewObjectNotFoundError("invoiceCode", query.InvoiceCode())
	}
	if err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	owner, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	return GetInvoiceQueryResponse{
		InvoiceCode:           query.InvoiceCode(),
		Kind:                  kind,
		OwnerID:               owner,
		ParcelRefs:            parcelRefs,
		DuplicateCodes:        duplicateCodes,
		TotalPrice:            kernel.NewMoney(totalPrice),
		TotalDeliveryFee:      kernel.NewMoney(totalDeliveryFee),
		TotalFragileSurcharge: kernel.NewMoney(totalFragile),
		TotalExtraFee:         kernel.NewMoney(totalExtraFee),
		TotalRefusalFee:       kernel.NewMoney(totalRefusalFee),
		NetPayable:            kernel.NewMoney(netPayable),
		Paid:                  paid,
		Active:                active,
		CreatedAt:             createdAt,
	}, nil
}
