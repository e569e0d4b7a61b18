package ports

import (
	"context"

	"colis/internal/core/domain/model/invoice"
)

// InvoiceRepository defines the persistence contract for invoice
// aggregates. Invoices are never deleted; merges soft-inactivate sources.
type InvoiceRepository interface {
	// Add persists a new invoice. The invoice code must not already exist.
	Add(ctx context.Context, aggregate *invoice.Invoice) error

	// Update persists changes (totals refresh, paid toggle, inactivation)
	// under optimistic concurrency.
	Update(ctx context.Context, aggregate *invoice.Invoice) error

	// GetByCode retrieves one invoice by its code.
	GetByCode(ctx context.Context, invoiceCode string) (*invoice.Invoice, error)

	// GetActiveCodes returns the codes of all active invoices, for the
	// background totals sweep.
	GetActiveCodes(ctx context.Context) ([]string, error)
}
