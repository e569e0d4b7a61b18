package commands

import (
	"errors"

	"colis/internal/pkg/errs"
	"colis/internal/pkg/guard"
)

var ErrMarkInvoicePaidCommandIsNotConstructed = errors.New(
	"MarkInvoicePaidCommand is not constructed, use NewMarkInvoicePaidCommand constructor")

// MarkInvoicePaidCommand toggles the settlement flag on an invoice.
type MarkInvoicePaidCommand struct {
	invoiceCode string
	paid        bool

	guard guard.ConstructorGuard
}

func NewMarkInvoicePaidCommand(invoiceCode string, paid bool) (MarkInvoicePaidCommand, error) {
	if invoiceCode == "" {
		return MarkInvoicePaidCommand{}, errs.NewValueIsRequiredError("invoiceCode")
	}

	return MarkInvoicePaidCommand{
		invoiceCode: invoiceCode,
		paid:        paid,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c MarkInvoicePaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkInvoicePaidCommandIsNotConstructed)
}

func (c MarkInvoicePaidCommand) InvoiceCode() string { return c.invoiceCode }

func (c MarkInvoicePaidCommand) Paid() bool { return c.paid }
