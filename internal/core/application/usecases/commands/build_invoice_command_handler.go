package commands

import (
	"context"
	"fmt"
	"time"

	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/ports"
)

// BuildInvoiceResult carries the created invoice plus the warnings the
// caller must see: an empty snapshot is not a failure but must not pass
// silently, and skipped parcels must stay visible.
type BuildInvoiceResult struct {
	Invoice        *invoice.Invoice
	EmptyResultSet bool
	SkippedCodes   []SkippedParcel
}

// BuildInvoiceCommandHandler creates an invoice from a snapshot of the
// parcels matching the command's filter. Totals are computed from each
// parcel's current tariff and price, with the net payable branching on the
// invoice kind.
type BuildInvoiceCommandHandler struct {
	uowFactory         UoWFactory
	rates              ports.RateProvider
	defaultCourierRate kernel.Money
}

// NewBuildInvoiceCommandHandler creates an invoice-build handler.
// defaultCourierRate is the payout used for courier invoices when the
// directory has no rate row for a parcel's city/courier pair; a zero value
// disables the fallback and such parcels are skipped and reported.
func NewBuildInvoiceCommandHandler(
	uowFactory UoWFactory,
	rates ports.RateProvider,
	defaultCourierRate kernel.Money,
) BuildInvoiceCommandHandler {
	return BuildInvoiceCommandHandler{
		uowFactory:         uowFactory,
		rates:              rates,
		defaultCourierRate: defaultCourierRate,
	}
}

// Handle builds and persists the invoice.
func (h BuildInvoiceCommandHandler) Handle(ctx context.Context, cmd BuildInvoiceCommand) (BuildInvoiceResult, error) {
	if err := cmd.Validate(); err != nil {
		return BuildInvoiceResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BuildInvoiceResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	filter := ports.ParcelFilter{
		From:     cmd.From(),
		To:       cmd.To(),
		StatusIn: cmd.StatusIn(),
	}
	ownerID := cmd.OwnerID()
	if cmd.Kind() == invoice.KindMerchant {
		filter.MerchantID = &ownerID
	} else {
		filter.CourierID = &ownerID
	}

	parcels, err := uow.ParcelRepository().FindForInvoice(ctx, filter)
	if err != nil {
		return BuildInvoiceResult{}, err
	}

	items, skipped, err := buildBillingItems(ctx, h.rates, cmd.Kind(), parcels, h.defaultCourierRate)
	if err != nil {
		return BuildInvoiceResult{}, err
	}

	inv, err := invoice.NewInvoice(
		newInvoiceCode(),
		cmd.Kind(),
		cmd.OwnerID(),
		refsOf(items),
		invoice.ComputeTotals(cmd.Kind(), items),
		time.Now().UTC(),
	)
	if err != nil {
		return BuildInvoiceResult{}, err
	}

	if err = uow.InvoiceRepository().Add(ctx, inv); err != nil {
		return BuildInvoiceResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BuildInvoiceResult{}, err
	}

	return BuildInvoiceResult{
		Invoice:        inv,
		EmptyResultSet: len(parcels) == 0,
		SkippedCodes:   skipped,
	}, nil
}

// newInvoiceCode generates a unique facture code.
func newInvoiceCode() string {
	return fmt.Sprintf("FAC-%s", kernel.NewUUID())
}
