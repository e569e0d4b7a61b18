package invoice

import (
	"errors"
	"fmt"
	"time"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/pkg/errs"
)

var (
	// ErrInvoiceIsNotConstructed is returned when an Invoice instance was
	// not created through NewInvoice or RestoreInvoice.
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice")

	// ErrInvoiceCodeIsRequired is returned when creating an invoice without
	// a code.
	ErrInvoiceCodeIsRequired = errs.NewValueIsRequiredError("invoiceCode")

	// ErrInvoiceIsInactive is returned when mutating an invoice that was
	// soft-inactivated by a merge.
	ErrInvoiceIsInactive = errors.New("invoice is inactive")
)

// Kind distinguishes the two settlement directions: invoices that pay the
// merchant for delivered goods, and invoices that pay the courier a flat
// per-parcel rate.
type Kind string

const (
	KindMerchant Kind = "merchant"
	KindCourier  Kind = "courier"
)

// Validate checks that the kind is one of the two settlement kinds.
func (k Kind) Validate() error {
	if k != KindMerchant && k != KindCourier {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid invoice kind", string(k)))
	}
	return nil
}

// Invoice (facture) groups parcels for one merchant or one courier over one
// settlement cycle. Totals are derived from the constituent parcels and are
// refreshed whenever membership changes or a parcel's billing state moved
// since the last read.
//
// Invariants:
//   - invoiceCode is unique and immutable
//   - totals equal the pointwise sum over the current parcel refs, with the
//     net payable branching on kind
//   - duplicate refs surviving a merge stay visible in duplicateCodes; they
//     are never silently dropped
//   - merged-away invoices are soft-inactivated, never deleted
type Invoice struct {
	invoiceCode    string
	kind           Kind
	ownerID        kernel.UUID
	parcelRefs     []string
	totals         Totals
	duplicateCodes []string
	paid           bool
	active         bool
	createdAt      time.Time
	version        int

	isConstructed bool
}

// NewInvoice creates an active, unpaid invoice from a snapshot of parcel
// refs and their computed totals. An empty ref set is legal: the aggregator
// still creates the invoice and warns the caller.
func NewInvoice(
	invoiceCode string,
	kind Kind,
	ownerID kernel.UUID,
	parcelRefs []string,
	totals Totals,
	createdAt time.Time,
) (*Invoice, error) {
	if invoiceCode == "" {
		return nil, ErrInvoiceCodeIsRequired
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	refs := make([]string, len(parcelRefs))
	copy(refs, parcelRefs)

	return &Invoice{
		invoiceCode:   invoiceCode,
		kind:          kind,
		ownerID:       ownerID,
		parcelRefs:    refs,
		totals:        totals,
		active:        true,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreInvoice rebuilds an invoice from persistence.
func RestoreInvoice(
	invoiceCode string,
	kind Kind,
	ownerID kernel.UUID,
	parcelRefs []string,
	totals Totals,
	duplicateCodes []string,
	paid bool,
	active bool,
	createdAt time.Time,
	version int,
) (*Invoice, error) {
	if invoiceCode == "" {
		return nil, ErrInvoiceCodeIsRequired
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	return &Invoice{
		invoiceCode:    invoiceCode,
		kind:           kind,
		ownerID:        ownerID,
		parcelRefs:     parcelRefs,
		totals:         totals,
		duplicateCodes: duplicateCodes,
		paid:           paid,
		active:         active,
		createdAt:      createdAt,
		version:        version,
		isConstructed:  true,
	}, nil
}

// Validate ensures the invoice was created through a constructor.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

// InvoiceCode returns the unique invoice identifier.
func (i *Invoice) InvoiceCode() string { return i.invoiceCode }

// Kind returns the settlement kind.
func (i *Invoice) Kind() Kind { return i.kind }

// OwnerID returns the merchant or courier being settled.
func (i *Invoice) OwnerID() kernel.UUID { return i.ownerID }

// ParcelRefs returns the ordered parcel tracking codes on the invoice.
func (i *Invoice) ParcelRefs() []string {
	out := make([]string, len(i.parcelRefs))
	copy(out, i.parcelRefs)
	return out
}

// Totals returns the cached derived totals.
func (i *Invoice) Totals() Totals { return i.totals }

// DuplicateCodes returns the billing-anomaly annotation left by a merge.
func (i *Invoice) DuplicateCodes() []string {
	out := make([]string, len(i.duplicateCodes))
	copy(out, i.duplicateCodes)
	return out
}

// IsPaid reports the operator-toggled paid flag.
func (i *Invoice) IsPaid() bool { return i.paid }

// IsActive reports whether the invoice was not merged away.
func (i *Invoice) IsActive() bool { return i.active }

// CreatedAt returns the snapshot time of the invoice.
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }

// Version returns the optimistic-concurrency version of the loaded record.
func (i *Invoice) Version() int { return i.version }

// AnnotateDuplicates records tracking codes that appeared on more than one
// source invoice during a merge. The engine never deduplicates them away;
// they must remain visible as a billing anomaly.
func (i *Invoice) AnnotateDuplicates(codes []string) {
	copied := make([]string, len(codes))
	copy(copied, codes)
	i.duplicateCodes = copied
}

// SetTotals replaces the cached totals after a recomputation.
func (i *Invoice) SetTotals(t Totals) {
	i.totals = t
}

// SetPaid toggles the paid flag. This is a separate operator action and is
// never recomputed by the engine.
func (i *Invoice) SetPaid(paid bool) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if !i.active {
		return ErrInvoiceIsInactive
	}

	i.paid = paid
	return nil
}

// Deactivate soft-inactivates the invoice after its parcels were merged
// into a new one.
func (i *Invoice) Deactivate() {
	i.active = false
}
