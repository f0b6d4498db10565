// Package jobs provides scheduled background tasks, built on
// github.com/robfig/cron/v3. Jobs are managed through JobManager, which
// starts and stops them as a group.
package jobs

import (
	"context"
	"log/slog"

	"canteen/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// kioskSnapshotSchedule broadcasts the board every ten seconds, often
// enough for displays that missed delta events to converge quickly.
const kioskSnapshotSchedule = "*/10 * * * * *"

// KioskSnapshotJob periodically broadcasts the full pickup board so kiosk
// displays can recover from missed status events.
type KioskSnapshotJob struct {
	handler commands.PublishKioskSnapshotCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewKioskSnapshotJob creates a new job for pickup board broadcasts.
func NewKioskSnapshotJob(handler commands.PublishKioskSnapshotCommandHandler, logger *slog.Logger) *KioskSnapshotJob {
	return &KioskSnapshotJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "kiosk_snapshot_job"),
	}
}

// Start begins the periodic board broadcast.
func (j *KioskSnapshotJob) Start() error {
	_, err := j.cron.AddFunc(kioskSnapshotSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewPublishKioskSnapshotCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Kiosk snapshot job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Kiosk snapshot job started")
	return nil
}

// Stop stops the board broadcast job.
func (j *KioskSnapshotJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Kiosk snapshot job stopped")
}
