package commands

import (
	"context"

	"colis/internal/core/ports"
)

// SetExtraFeeCommandHandler attaches the operator's ad-hoc fee and
// recomputes the parcel's tariff so the breakdown invariant holds with the
// new extra-fee input.
type SetExtraFeeCommandHandler struct {
	uowFactory ParcelUoWFactory
	rates      ports.RateProvider
}

// NewSetExtraFeeCommandHandler creates an extra-fee handler.
func NewSetExtraFeeCommandHandler(uowFactory ParcelUoWFactory, rates ports.RateProvider) SetExtraFeeCommandHandler {
	return SetExtraFeeCommandHandler{
		uowFactory: uowFactory,
		rates:      rates,
	}
}

// Handle attaches the fee and persists the recomputed tariff.
func (h SetExtraFeeCommandHandler) Handle(ctx context.Context, cmd SetExtraFeeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()

	p, err := repo.GetByTrackingCode(ctx, cmd.TrackingCode())
	if err != nil {
		return err
	}

	if err = p.SetExtraFee(cmd.Fee()); err != nil {
		return err
	}

	if err = recomputeTariff(ctx, h.rates, p); err != nil {
		return err
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
