// Package jobs provides scheduled background tasks for the dispatch core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the in-memory dispatch state.
//
// # Available Jobs
//
// 1. StatusRenderJob - Runs every second to render a live dispatch dashboard
// to the terminal, redrawing in place with ANSI cursor movement.
// 2. OrderArchiveJob - Runs every second to drain changed orders and drivers
// from the dispatcher and persist them to the archive database in one
// transaction.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(renderJob, archiveJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs use the cron expression "* * * * * *" which means they run every
// second.
//
// # Error Handling
//
// Both jobs observe state rather than drive business transitions, so every
// error they hit is a system issue and is logged. Neither job ever blocks the
// dispatcher beyond the instant it takes to copy a snapshot.
package jobs
