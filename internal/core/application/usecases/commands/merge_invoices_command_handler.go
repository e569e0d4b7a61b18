package commands

import (
	"context"
	"fmt"
	"time"

	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/services"
	"colis/internal/core/ports"
	"colis/internal/pkg/errs"
)

// MergeInvoicesResult carries the merged invoice and the duplicate
// annotation. A tracking code on more than one source invoice is a billing
// anomaly: it stays on the merged invoice's refs and in DuplicateCodes, and
// its amounts are counted once in the totals. Parcels whose billing amounts
// could not be determined are left off the merged refs and reported in
// SkippedCodes.
type MergeInvoicesResult struct {
	Invoice        *invoice.Invoice
	DuplicateCodes []string
	SkippedCodes   []SkippedParcel
}

// MergeInvoicesCommandHandler merges invoices inside one transaction: the
// sources are read as a consistent snapshot, the new invoice is written and
// the sources soft-inactivated in a single commit. No partial merge state
// is ever externally visible, and merges are never retried.
//
// All sources must be active and share the same kind and owner; anything
// else is a structural failure that aborts the merge.
type MergeInvoicesCommandHandler struct {
	uowFactory         UoWFactory
	rates              ports.RateProvider
	defaultCourierRate kernel.Money
}

// NewMergeInvoicesCommandHandler creates a merge handler.
func NewMergeInvoicesCommandHandler(
	uowFactory UoWFactory,
	rates ports.RateProvider,
	defaultCourierRate kernel.Money,
) MergeInvoicesCommandHandler {
	return MergeInvoicesCommandHandler{
		uowFactory:         uowFactory,
		rates:              rates,
		defaultCourierRate: defaultCourierRate,
	}
}

// Handle merges the source invoices and returns the new one.
func (h MergeInvoicesCommandHandler) Handle(ctx context.Context, cmd MergeInvoicesCommand) (MergeInvoicesResult, error) {
	if err := cmd.Validate(); err != nil {
		return MergeInvoicesResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MergeInvoicesResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()

	sources := make([]*invoice.Invoice, 0, len(cmd.InvoiceCodes()))
	for _, code := range cmd.InvoiceCodes() {
		src, err := invoiceRepo.GetByCode(ctx, code)
		if err != nil {
			return MergeInvoicesResult{}, err
		}
		if !src.IsActive() {
			return MergeInvoicesResult{}, errs.NewValueIsInvalidErrorWithCause(
				"invoiceCodes", fmt.Errorf("invoice %s is inactive", code))
		}
		sources = append(sources, src)
	}

	kind := sources[0].Kind()
	ownerID := sources[0].OwnerID()
	for _, src := range sources[1:] {
		if src.Kind() != kind || !src.OwnerID().IsEqual(ownerID) {
			return MergeInvoicesResult{}, errs.NewValueIsInvalidErrorWithCause(
				"invoiceCodes", fmt.Errorf("invoice %s does not settle the same party", src.InvoiceCode()))
		}
	}

	// Concatenate refs in source order; duplicates stay in the union once
	// but are annotated, never silently dropped.
	concatenated := make([]string, 0)
	for _, src := range sources {
		concatenated = append(concatenated, src.ParcelRefs()...)
	}
	duplicates := services.NewDuplicateDetector().Detect(concatenated)
	union := uniqueInOrder(concatenated)

	parcels, err := uow.ParcelRepository().GetByTrackingCodes(ctx, union)
	if err != nil {
		return MergeInvoicesResult{}, err
	}

	// Totals come from the unique union, not the sum of source totals:
	// a duplicated parcel must be counted once.
	items, skipped, err := buildBillingItems(ctx, h.rates, kind, parcels, h.defaultCourierRate)
	if err != nil {
		return MergeInvoicesResult{}, err
	}

	merged, err := invoice.NewInvoice(
		newInvoiceCode(),
		kind,
		ownerID,
		withoutSkipped(union, skipped),
		invoice.ComputeTotals(kind, items),
		time.Now().UTC(),
	)
	if err != nil {
		return MergeInvoicesResult{}, err
	}
	merged.AnnotateDuplicates(duplicates)

	if err = invoiceRepo.Add(ctx, merged); err != nil {
		return MergeInvoicesResult{}, err
	}

	for _, src := range sources {
		src.Deactivate()
		if err = invoiceRepo.Update(ctx, src); err != nil {
			return MergeInvoicesResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return MergeInvoicesResult{}, err
	}

	return MergeInvoicesResult{
		Invoice:        merged,
		DuplicateCodes: duplicates,
		SkippedCodes:   skipped,
	}, nil
}

// uniqueInOrder keeps the first occurrence of each code.
func uniqueInOrder(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}

// withoutSkipped drops the skipped codes from the refs, keeping order. The
// refs of an invoice must cover exactly the parcels its totals bill.
func withoutSkipped(codes []string, skipped []SkippedParcel) []string {
	if len(skipped) == 0 {
		return codes
	}
	drop := make(map[string]bool, len(skipped))
	for _, s := range skipped {
		drop[s.Code] = true
	}
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if !drop[code] {
			out = append(out, code)
		}
	}
	return out
}
