package commands

import (
	"context"
	"errors"

	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"
	"colis/internal/core/ports"
	"colis/internal/pkg/errs"
)

// SkippedParcel records a parcel left off an invoice because its billing
// amounts could not be determined. Skips are reported, never silent: an
// unpriceable parcel must not be invoiced at a wrong amount.
type SkippedParcel struct {
	Code   string
	Reason string
}

// buildBillingItems turns parcel snapshots into the billing items invoice
// totals are computed from. Totals sum each parcel's current stored tariff
// and price. For courier invoices the flat per-parcel payout comes from the
// directory rate entry; a missing entry falls back to the configured
// default rate, and with no default the parcel is skipped and reported.
func buildBillingItems(
	ctx context.Context,
	rates ports.RateProvider,
	kind invoice.Kind,
	parcels []*parcel.Parcel,
	defaultCourierRate kernel.Money,
) ([]invoice.BillingItem, []SkippedParcel, error) {
	items := make([]invoice.BillingItem, 0, len(parcels))
	skipped := make([]SkippedParcel, 0)

	for _, p := range parcels {
		item := invoice.BillingItem{
			TrackingCode: p.TrackingCode(),
			Price:        p.Price(),
			Tariff:       p.Tariff(),
		}

		if kind == invoice.KindCourier {
			rate, err := rates.RateFor(ctx, p.CityID(), p.CourierID())
			switch {
			case err == nil:
				item.CourierRate = rate.CourierRate
			case errors.Is(err, errs.ErrRateNotFound) && !defaultCourierRate.IsZero():
				item.CourierRate = defaultCourierRate
			case errors.Is(err, errs.ErrRateNotFound):
				skipped = append(skipped, SkippedParcel{Code: p.TrackingCode(), Reason: ReasonRateNotFound})
				continue
			default:
				return nil, nil, err
			}
		}

		items = append(items, item)
	}

	return items, skipped, nil
}

// refsOf extracts the tracking codes of the billed items, in order.
func refsOf(items []invoice.BillingItem) []string {
	refs := make([]string, len(items))
	for i, item := range items {
		refs[i] = item.TrackingCode
	}
	return refs
}
