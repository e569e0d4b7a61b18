package commands

import (
	"context"
	"time"

	"colis/internal/core/domain/model/parcel"
)

// CreateParcelCommandHandler handles merchant intake. Creates the parcel in
// New status with its first history entry and persists it transactionally.
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewCreateParcelCommandHandler creates a handler for parcel intake.
func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the intake command.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) error {
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

	p, err := parcel.NewParcel(
		cmd.TrackingCode(),
		cmd.MerchantID(),
		cmd.CityID(),
		cmd.Price(),
		cmd.IsFragile(),
		cmd.IsReplacement(),
		cmd.IsOpenable(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
