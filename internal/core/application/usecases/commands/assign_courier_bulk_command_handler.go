package commands

import (
	"context"
	"log/slog"
	"sync"

	"colis/internal/core/ports"
	"colis/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// AssignCourierBulkCommandHandler assigns one courier to many parcels. The
// courier is resolved against the directory once; each parcel then updates
// on its own unit of work inside the bounded worker pool.
type AssignCourierBulkCommandHandler struct {
	uowFactory ParcelUoWFactory
	directory  ports.RateProvider
	workers    int
	retries    int
	logger     *slog.Logger
}

// NewAssignCourierBulkCommandHandler creates a bulk assignment handler.
func NewAssignCourierBulkCommandHandler(
	uowFactory ParcelUoWFactory,
	directory ports.RateProvider,
	workers int,
	retries int,
	logger *slog.Logger,
) AssignCourierBulkCommandHandler {
	if workers < 1 {
		workers = 1
	}
	if retries < 0 {
		retries = 0
	}
	return AssignCourierBulkCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		workers:    workers,
		retries:    retries,
		logger:     logger.With("component", "assign_courier_bulk"),
	}
}

// Handle verifies the courier exists, then processes the batch and returns
// the success/failure partition. An unknown courier is a structural failure
// that aborts the whole operation before any item runs.
func (h AssignCourierBulkCommandHandler) Handle(ctx context.Context, cmd AssignCourierBulkCommand) (BulkResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkResult{}, err
	}

	exists, err := h.directory.CourierExists(ctx, cmd.CourierID())
	if err != nil {
		return BulkResult{}, err
	}
	if !exists {
		return BulkResult{}, errs.NewObjectNotFoundError("courierId", cmd.CourierID().String())
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
				return h.assignOne(gctx, code, cmd)
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

	_ = g.Wait()

	h.logger.InfoContext(ctx, "Bulk courier assignment finished",
		"courierId", cmd.CourierID().String(),
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)

	return result, nil
}

func (h AssignCourierBulkCommandHandler) assignOne(ctx context.Context, code string, cmd AssignCourierBulkCommand) error {
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

	if err = p.AssignCourier(cmd.CourierID()); err != nil {
		return err
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
