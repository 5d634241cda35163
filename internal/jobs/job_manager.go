package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statusRenderJob *StatusRenderJob
	orderArchiveJob *OrderArchiveJob
}

// NewJobManager creates a new job manager over the given jobs.
// Either job may be nil, in which case it is skipped; running without an
// archive database disables the archive job but keeps the dashboard.
func NewJobManager(renderJob *StatusRenderJob, archiveJob *OrderArchiveJob) *JobManager {
	return &JobManager{
		statusRenderJob: renderJob,
		orderArchiveJob: archiveJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.statusRenderJob != nil {
		if err := jm.statusRenderJob.Start(); err != nil {
			return fmt.Errorf("failed to start status render job: %w", err)
		}
	}

	if jm.orderArchiveJob != nil {
		if err := jm.orderArchiveJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			if jm.statusRenderJob != nil {
				jm.statusRenderJob.Stop()
			}
			return fmt.Errorf("failed to start order archive job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.orderArchiveJob != nil {
		jm.orderArchiveJob.Stop()
	}
	if jm.statusRenderJob != nil {
		jm.statusRenderJob.Stop()
	}
}
