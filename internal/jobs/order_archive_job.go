package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ChangeSource hands out value records of everything modified since the last
// drain, and takes records back when a sweep could not persist them.
// Implemented by the dispatcher.
type ChangeSource interface {
	DrainChanges(ctx context.Context) ([]ports.OrderRecord, []ports.DriverRecord)
	RequeueChanges(ctx context.Context, orders []ports.OrderRecord, drivers []ports.DriverRecord)
}

// OrderArchiveJob copies dispatch state changes to the archive database.
// Runs every second: drains the dispatcher's change set and writes it in one
// transaction. Archiving is write-behind, so the dispatch core keeps running
// when the database is slow or down; a failed sweep is logged, its records
// are requeued at the source, and they land with the next successful sweep.
type OrderArchiveJob struct {
	source     ChangeSource
	uowFactory ports.ArchiveUnitOfWorkFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOrderArchiveJob creates a job that archives dispatch changes using the
// given unit of work factory.
func NewOrderArchiveJob(
	source ChangeSource,
	uowFactory ports.ArchiveUnitOfWorkFactory,
	logger *slog.Logger,
) *OrderArchiveJob {
	return &OrderArchiveJob{
		source:     source,
		uowFactory: uowFactory,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "order_archive_job"),
	}
}

// Start begins the archive job to run every second.
func (j *OrderArchiveJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		if err := j.Sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order archive job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order archive job started (running every second)")
	return nil
}

// Stop stops the archive job.
func (j *OrderArchiveJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order archive job stopped")
}

// Sweep drains the current change set and persists it in one transaction.
// A sweep with no changes touches neither the database nor the log. On
// failure the drained records are requeued so the next sweep retries them.
func (j *OrderArchiveJob) Sweep(ctx context.Context) error {
	orderRecords, driverRecords := j.source.DrainChanges(ctx)
	if len(orderRecords) == 0 && len(driverRecords) == 0 {
		return nil
	}

	if err := j.archive(ctx, orderRecords, driverRecords); err != nil {
		j.source.RequeueChanges(ctx, orderRecords, driverRecords)
		return err
	}

	j.logger.DebugContext(ctx, "archived dispatch changes",
		"orders", len(orderRecords), "drivers", len(driverRecords))
	return nil
}

func (j *OrderArchiveJob) archive(ctx context.Context, orderRecords []ports.OrderRecord, driverRecords []ports.DriverRecord) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderArchive := uow.OrderArchive()
	for _, record := range orderRecords {
		if err := orderArchive.Upsert(ctx, record); err != nil {
			return err
		}
	}

	driverArchive := uow.DriverArchive()
	for _, record := range driverRecords {
		if err := driverArchive.Upsert(ctx, record); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
