package jobs

import (
	"context"
	"log/slog"

	"colis/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// InvoiceTotalsSweepJob keeps the cached totals of active invoices warm.
// Parcel tariffs can move after an invoice was built (extra fees, late
// refusals); reads already refresh on demand, the sweep bounds how stale a
// never-read invoice can get. Runs every minute.
type InvoiceTotalsSweepJob struct {
	uowFactory commands.UoWFactory
	handler    commands.RecomputeInvoiceTotalsCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewInvoiceTotalsSweepJob creates the sweep job.
func NewInvoiceTotalsSweepJob(
	uowFactory commands.UoWFactory,
	handler commands.RecomputeInvoiceTotalsCommandHandler,
	logger *slog.Logger,
) *InvoiceTotalsSweepJob {
	return &InvoiceTotalsSweepJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "invoice_totals_sweep_job"),
	}
}

// Start schedules the sweep to run at the top of every minute.
func (j *InvoiceTotalsSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.sweep(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Invoice totals sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *InvoiceTotalsSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Invoice totals sweep job stopped")
}

// sweep refreshes every active invoice, continuing past per-invoice
// failures.
func (j *InvoiceTotalsSweepJob) sweep(ctx context.Context) {
	codes, err := j.activeCodes(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invoice totals sweep failed to list invoices", "error", err)
		return
	}

	for _, code := range codes {
		cmd, cmdErr := commands.NewRecomputeInvoiceTotalsCommand(code)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Invoice totals sweep skipped invoice", "invoice", code, "error", cmdErr)
			continue
		}

		result, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Invoice totals sweep failed for invoice", "invoice", code, "error", handleErr)
			continue
		}

		for _, s := range result.SkippedCodes {
			j.logger.WarnContext(ctx, "Invoice totals sweep skipped unpriceable parcel",
				"invoice", code, "parcel", s.Code, "reason", s.Reason)
		}
	}
}

func (j *InvoiceTotalsSweepJob) activeCodes(ctx context.Context) ([]string, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.InvoiceRepository().GetActiveCodes(ctx)
}
