package jobs

import (
	"fmt"
	"log/slog"

	"canteen/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	kioskSnapshotJob *KioskSnapshotJob
}

// NewJobManager creates a job manager wired to the given command handlers.
func NewJobManager(
	kioskSnapshotHandler commands.PublishKioskSnapshotCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		kioskSnapshotJob: NewKioskSnapshotJob(kioskSnapshotHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.kioskSnapshotJob.Start(); err != nil {
		return fmt.Errorf("failed to start kiosk snapshot job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.kioskSnapshotJob.Stop()
}
