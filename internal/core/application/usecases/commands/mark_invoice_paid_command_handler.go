package commands

import (
	"context"
)

// MarkInvoicePaidCommandHandler flips the paid flag on an active invoice.
type MarkInvoicePaidCommandHandler struct {
	uowFactory UoWFactory
}

func NewMarkInvoicePaidCommandHandler(uowFactory UoWFactory) MarkInvoicePaidCommandHandler {
	return MarkInvoicePaidCommandHandler{uowFactory: uowFactory}
}

func (h MarkInvoicePaidCommandHandler) Handle(ctx context.Context, cmd MarkInvoicePaidCommand) error {
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

	invoiceRepo := uow.InvoiceRepository()

	inv, err := invoiceRepo.GetByCode(ctx, cmd.InvoiceCode())
	if err != nil {
		return err
	}

	if err = inv.SetPaid(cmd.Paid()); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
