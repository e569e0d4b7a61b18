package commands

import (
	"context"

	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/ports"
)

// RecomputeInvoiceTotalsResult reports the parcels whose billing amounts
// could not be determined during the refresh. Their referenced invoice
// keeps them on its refs, but they contribute nothing to the totals, and
// the caller must see that.
type RecomputeInvoiceTotalsResult struct {
	SkippedCodes []SkippedParcel
}

// RecomputeInvoiceTotalsCommandHandler rebuilds the totals of one active
// invoice from its parcels and persists them only when they drifted.
// Inactive invoices are frozen historical records and are left untouched.
type RecomputeInvoiceTotalsCommandHandler struct {
	uowFactory         UoWFactory
	rates              ports.RateProvider
	defaultCourierRate kernel.Money
}

func NewRecomputeInvoiceTotalsCommandHandler(
	uowFactory UoWFactory,
	rates ports.RateProvider,
	defaultCourierRate kernel.Money,
) RecomputeInvoiceTotalsCommandHandler {
	return RecomputeInvoiceTotalsCommandHandler{
		uowFactory:         uowFactory,
		rates:              rates,
		defaultCourierRate: defaultCourierRate,
	}
}

func (h RecomputeInvoiceTotalsCommandHandler) Handle(ctx context.Context, cmd RecomputeInvoiceTotalsCommand) (RecomputeInvoiceTotalsResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecomputeInvoiceTotalsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RecomputeInvoiceTotalsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()

	inv, err := invoiceRepo.GetByCode(ctx, cmd.InvoiceCode())
	if err != nil {
		return RecomputeInvoiceTotalsResult{}, err
	}
	if !inv.IsActive() {
		return RecomputeInvoiceTotalsResult{}, nil
	}

	parcels, err := uow.ParcelRepository().GetByTrackingCodes(ctx, inv.ParcelRefs())
	if err != nil {
		return RecomputeInvoiceTotalsResult{}, err
	}

	items, skipped, err := buildBillingItems(ctx, h.rates, inv.Kind(), parcels, h.defaultCourierRate)
	if err != nil {
		return RecomputeInvoiceTotalsResult{}, err
	}

	result := RecomputeInvoiceTotalsResult{SkippedCodes: skipped}

	fresh := invoice.ComputeTotals(inv.Kind(), items)
	if fresh.IsEqual(inv.Totals()) {
		return result, nil
	}

	inv.SetTotals(fresh)

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return RecomputeInvoiceTotalsResult{}, err
	}

	return result, uow.Commit(ctx)
}
