package commands

import (
	"errors"

	"colis/internal/pkg/guard"
)

var (
	ErrMergeInvoicesCommandIsNotConstructed = errors.New(
		"MergeInvoicesCommand must be created via NewMergeInvoicesCommand constructor",
	)
	ErrNotEnoughInvoicesToMerge = errors.New("at least two invoice codes are required to merge")
)

// MergeInvoicesCommand requests the merge of two or more invoices into one
// new invoice, soft-inactivating the sources.
type MergeInvoicesCommand struct { //nolint:recvcheck //using for validation
	invoiceCodes []string

	guard guard.ConstructorGuard
}

// NewMergeInvoicesCommand creates a merge command.
func NewMergeInvoicesCommand(invoiceCodes []string) (MergeInvoicesCommand, error) {
	if len(invoiceCodes) < 2 {
		return MergeInvoicesCommand{}, ErrNotEnoughInvoicesToMerge
	}

	codes := make([]string, len(invoiceCodes))
	copy(codes, invoiceCodes)

	return MergeInvoicesCommand{
		invoiceCodes: codes,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MergeInvoicesCommand) Validate() error {
	return c.guard.Validate(ErrMergeInvoicesCommandIsNotConstructed)
}

// InvoiceCodes returns the source invoices to merge, in request order.
func (c MergeInvoicesCommand) InvoiceCodes() []string {
	codes := make([]string, len(c.invoiceCodes))
	copy(codes, c.invoiceCodes)
	return codes
}
