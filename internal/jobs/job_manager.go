// Package jobs provides the scheduled background tasks of the back office,
// built on github.com/robfig/cron/v3 and coordinated by JobManager.
package jobs

import (
	"fmt"
	"log/slog"

	"colis/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	invoiceTotalsSweepJob *InvoiceTotalsSweepJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	uowFactory commands.UoWFactory,
	recomputeHandler commands.RecomputeInvoiceTotalsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		invoiceTotalsSweepJob: NewInvoiceTotalsSweepJob(uowFactory, recomputeHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.invoiceTotalsSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start invoice totals sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.invoiceTotalsSweepJob.Stop()
}
