package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	settlementSweepJob *SettlementSweepJob
	reconciliationJob  *ReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(sweep *SettlementSweepJob, reconciliation *ReconciliationJob) *JobManager {
	return &JobManager{
		settlementSweepJob: sweep,
		reconciliationJob:  reconciliation,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconciliation job: %w", err)
	}

	if err := jm.settlementSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconciliationJob.Stop()
		return fmt.Errorf("failed to start settlement sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.settlementSweepJob.Stop()
	jm.reconciliationJob.Stop()
}
