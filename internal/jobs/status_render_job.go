package jobs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"dispatch/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// SnapshotProvider supplies consistent point-in-time views of the dispatch
// state. Implemented by the dispatcher.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (services.Snapshot, error)
}

var spinnerFrames = []rune{'|', '/', '-', '\\'}

// StatusRenderJob renders a live dispatch dashboard once per second.
// Each tick takes one atomic snapshot and redraws in place using ANSI cursor
// movement, so the terminal shows a rolling status board instead of a scroll
// of lines.
type StatusRenderJob struct {
	provider SnapshotProvider
	out      io.Writer
	cron     *cron.Cron
	logger   *slog.Logger

	frame     int
	lastLines int
}

// NewStatusRenderJob creates a job that renders snapshots to the given
// writer. Pass os.Stdout for the interactive dashboard; tests pass a buffer.
func NewStatusRenderJob(provider SnapshotProvider, out io.Writer, logger *slog.Logger) *StatusRenderJob {
	return &StatusRenderJob{
		provider: provider,
		out:      out,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "status_render_job"),
	}
}

// Start begins the render job to run every second.
func (j *StatusRenderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		snapshot, err := j.provider.Snapshot(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Status render job failed", "error", err)
			return
		}

		j.Render(snapshot)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status render job started (running every second)")
	return nil
}

// Stop stops the render job.
func (j *StatusRenderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Status render job stopped")
}

// Render writes one frame of the dashboard. The previous frame is overwritten
// by moving the cursor up before redrawing. Exported so a simulation run can
// drive rendering directly without the scheduler.
func (j *StatusRenderJob) Render(snapshot services.Snapshot) {
	var b strings.Builder

	if j.lastLines > 0 {
		fmt.Fprintf(&b, "\033[%dA", j.lastLines)
	}

	spinner := spinnerFrames[j.frame%len(spinnerFrames)]
	j.frame++

	lines := 0
	writeLine := func(format string, args ...any) {
		// \033[K clears the tail of the previous, possibly longer line.
		fmt.Fprintf(&b, format+"\033[K\n", args...)
		lines++
	}

	writeLine("%c Dispatch status", spinner)
	writeLine("  Orders: %d placed, %d accepted, %d in progress, %d delivered (%d total, %d queued)",
		snapshot.Placed, snapshot.Accepted, snapshot.InProgress, snapshot.Delivered,
		snapshot.Total(), snapshot.QueuedOrders)
	writeLine("  Drivers: %d available of %d", snapshot.AvailableDrivers, len(snapshot.Drivers))
	for _, driver := range snapshot.Drivers {
		writeLine("    %-12s %-11s avg %.2f", driver.Name, driver.Activity, driver.AvgRating)
	}

	j.lastLines = lines
	fmt.Fprint(j.out, b.String())
}
