package commands

import (
	"context"
	"time"

	"colis/internal/core/ports"
)

// ChangeStatusCommandHandler applies one status transition on one parcel.
// On transitions into a tariff-finalizing status (Delivered or the refusal
// class) it recomputes the CRBT breakdown from the directory rate before
// persisting; a missing rate entry fails the transition and leaves the
// previous tariff untouched.
//
// The write is versioned: a concurrent update to the same parcel surfaces
// as ErrConcurrentModification. Invoices referencing the parcel are not
// touched here; their cached totals refresh lazily on the next read.
type ChangeStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
	rates      ports.RateProvider
}

// NewChangeStatusCommandHandler creates a handler for single status
// transitions.
func NewChangeStatusCommandHandler(uowFactory ParcelUoWFactory, rates ports.RateProvider) ChangeStatusCommandHandler {
	return ChangeStatusCommandHandler{
		uowFactory: uowFactory,
		rates:      rates,
	}
}

// Handle processes one status change.
func (h ChangeStatusCommandHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) error {
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

	if err = p.ApplyTransition(cmd.Role(), cmd.NewStatus(), cmd.Payload(), time.Now().UTC()); err != nil {
		return err
	}

	if cmd.NewStatus().FinalizesTariff() {
		if err = recomputeTariff(ctx, h.rates, p); err != nil {
			return err
		}
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
