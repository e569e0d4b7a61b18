package queries

import (
	"errors"
	"time"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/pkg/errs"
	"colis/internal/pkg/guard"
)

var ErrGetInvoiceQueryIsNotConstructed = errors.New(
	"GetInvoiceQuery must be created via NewGetInvoiceQuery constructor",
)

// GetInvoiceQuery retrieves one invoice with up-to-date totals.
//
// Example:
//
//	query, err := NewGetInvoiceQuery("FAC-8f14e45f")
//	if err != nil {
//	    return err
//	}
//
//	inv, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get invoice: %w", err)
//	}
//
//	fmt.Printf("invoice %s settles %s for %s\n",
//	    inv.InvoiceCode, inv.Kind, inv.NetPayable)
type GetInvoiceQuery struct {
	invoiceCode string

	guard guard.ConstructorGuard
}

// NewGetInvoiceQuery creates an invoice query for one invoice code.
func NewGetInvoiceQuery(invoiceCode string) (GetInvoiceQuery, error) {
	if invoiceCode == "" {
		return GetInvoiceQuery{}, errs.NewValueIsRequiredError("invoiceCode")
	}

	return GetInvoiceQuery{
		invoiceCode: invoiceCode,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

func (q GetInvoiceQuery) InvoiceCode() string { return q.invoiceCode }

// GetInvoiceQueryResponse is the read model of one invoice.
type GetInvoiceQueryResponse struct {
	InvoiceCode           string
	Kind                  string
	OwnerID               kernel.UUID
	ParcelRefs            []string
	DuplicateCodes        []string
	TotalPrice            kernel.Money
	TotalDeliveryFee      kernel.Money
	TotalFragileSurcharge kernel.Money
	TotalExtraFee         kernel.Money
	TotalRefusalFee       kernel.Money
	NetPayable            kernel.Money
	Paid                  bool
	Active                bool
	CreatedAt             time.Time
}
