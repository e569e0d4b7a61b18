package commands

import (
	"errors"

	"colis/internal/pkg/errs"
	"colis/internal/pkg/guard"
)

var ErrRecomputeInvoiceTotalsCommandIsNotConstructed = errors.New(
	"RecomputeInvoiceTotalsCommand is not constructed, use NewRecomputeInvoiceTotalsCommand constructor")

// RecomputeInvoiceTotalsCommand refreshes the cached totals of an active
// invoice from the current state of its parcels. Parcel tariffs can change
// after the invoice was built (an extra fee adjustment, a late refusal), so
// stored totals are a cache, not a source of truth.
type RecomputeInvoiceTotalsCommand struct {
	invoiceCode string

	guard guard.ConstructorGuard
}

func NewRecomputeInvoiceTotalsCommand(invoiceCode string) (RecomputeInvoiceTotalsCommand, error) {
	if invoiceCode == "" {
		return RecomputeInvoiceTotalsCommand{}, errs.NewValueIsRequiredError("invoiceCode")
	}

	return RecomputeInvoiceTotalsCommand{
		invoiceCode: invoiceCode,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RecomputeInvoiceTotalsCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeInvoiceTotalsCommandIsNotConstructed)
}

func (c RecomputeInvoiceTotalsCommand) InvoiceCode() string { return c.invoiceCode }
