package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"colis/internal/core/ports"
	"colis/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// UpdateStatusBulkCommandHandler drives one status transition across a list
// of parcels. Each item runs on its own unit of work inside a bounded
// worker pool; a failure rolls back and is reported for that item only.
//
// Items retry a small fixed number of times on CollaboratorUnavailable (a
// persistence/directory timeout). Lost optimistic-concurrency races are
// reported, never silently retried.
type UpdateStatusBulkCommandHandler struct {
	uowFactory ParcelUoWFactory
	rates      ports.RateProvider
	workers    int
	retries    int
	logger     *slog.Logger
}

// NewUpdateStatusBulkCommandHandler creates a bulk status-change handler.
// workers bounds the parallelism; retries is the extra attempts allowed per
// item on collaborator timeouts.
func NewUpdateStatusBulkCommandHandler(
	uowFactory ParcelUoWFactory,
	rates ports.RateProvider,
	workers int,
	retries int,
	logger *slog.Logger,
) UpdateStatusBulkCommandHandler {
	if workers < 1 {
		workers = 1
	}
	if retries < 0 {
		retries = 0
	}
	return UpdateStatusBulkCommandHandler{
		uowFactory: uowFactory,
		rates:      rates,
		workers:    workers,
		retries:    retries,
		logger:     logger.With("component", "update_status_bulk"),
	}
}

// Handle processes the batch and returns the success/failure partition.
func (h UpdateStatusBulkCommandHandler) Handle(ctx context.Context, cmd UpdateStatusBulkCommand) (BulkResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkResult{}, err
	}

	result := BulkResult{
		Succeeded: make([]string, 0, len(cmd.TrackingCodes())),
		Failed:    make([]BulkFailure, 0),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)

	for _, code := range cmd.TrackingCodes() {
		g.Go(func() error {
			err := withCollaboratorRetry(h.retries, func() error {
				return h.applyOne(gctx, code, cmd)
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BulkFailure{Code: code, Reason: classifyReason(err)})
				return nil
			}
			result.Succeeded = append(result.Succeeded, code)
			return nil
		})
	}

	// Item errors are folded into the partition; the group never fails.
	_ = g.Wait()

	h.logger.InfoContext(ctx, "Bulk status update finished",
		"status", cmd.NewStatus().String(),
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)

	return result, nil
}

func (h UpdateStatusBulkCommandHandler) applyOne(ctx context.Context, code string, cmd UpdateStatusBulkCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()

	p, err := repo.GetByTrackingCode(ctx, code)
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

// withCollaboratorRetry reruns fn on CollaboratorUnavailable up to retries
// extra attempts. Any other error returns immediately.
func withCollaboratorRetry(retries int, fn func() error) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, errs.ErrCollaboratorUnavailable) {
			return err
		}
	}
	return err
}
