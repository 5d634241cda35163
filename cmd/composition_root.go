package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/memory/driverregistry"
	"dispatch/internal/adapters/out/memory/orderstore"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"
	"dispatch/internal/simulation"

	"gorm.io/gorm"
)

// CompositionRoot wires the dispatch core, the simulator, the background
// jobs, and the archive together. All construction happens here; the rest of
// the application receives ready dependencies.
type CompositionRoot struct {
	dispatcher *services.Dispatcher
	simulator  *simulation.Simulator
	jobManager *jobs.JobManager
	gormDB     *gorm.DB
}

// NewCompositionRoot builds the application object graph.
// gormDB may be nil, which disables the archive job and the history
// endpoints read against an absent database.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	store := orderstore.NewStore()
	registry := driverregistry.NewRegistry()
	pool := services.NewDriverPool()
	dispatcher := services.NewDispatcher(store, registry, pool, logger)

	simulator := simulation.NewSimulator(dispatcher, logger)
	if minDelay, maxDelay, ok := simulationTiming(config); ok {
		simulator.SetTiming(minDelay, maxDelay-minDelay)
	}

	var renderOut io.Writer = io.Discard
	if config.RenderToStdout == "true" {
		renderOut = os.Stdout
	}
	renderJob := jobs.NewStatusRenderJob(dispatcher, renderOut, logger)

	var archiveJob *jobs.OrderArchiveJob
	if gormDB != nil {
		uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
		archiveJob = jobs.NewOrderArchiveJob(dispatcher, uowFactory, logger)
	}

	return CompositionRoot{
		dispatcher: dispatcher,
		simulator:  simulator,
		jobManager: jobs.NewJobManager(renderJob, archiveJob),
		gormDB:     gormDB,
	}
}

// Dispatcher returns the exclusive-access dispatch boundary.
func (c *CompositionRoot) Dispatcher() *services.Dispatcher {
	return c.dispatcher
}

// Simulator returns the background traffic generator.
func (c *CompositionRoot) Simulator() *simulation.Simulator {
	return c.simulator
}

// JobManager returns the scheduled job coordinator.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// CreateHTTPServer builds the API server over the wired handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.dispatcher,
		c.simulator,
		c.CreateGetOrderHistoryQueryHandler(),
		c.CreateGetDriverLeaderboardQueryHandler(),
	)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverLeaderboardQueryHandler() queries.GetDriverLeaderboardQueryHandler {
	return queries.NewGetDriverLeaderboardQueryHandler(c.gormDB)
}

// SeedDrivers registers the demo driver roster.
func (c *CompositionRoot) SeedDrivers(ctx context.Context) error {
	handler := commands.NewRegisterDriverCommandHandler(c.dispatcher)

	return c.simulator.SeedDrivers(ctx, func(ctx context.Context, name string) error {
		cmd, err := commands.NewRegisterDriverCommand(name)
		if err != nil {
			return err
		}

		_, err = handler.Handle(ctx, cmd)
		return err
	})
}

func simulationTiming(config Config) (time.Duration, time.Duration, bool) {
	minMs, err := strconv.Atoi(config.SimMinDelayMs)
	if err != nil {
		return 0, 0, false
	}
	maxMs, err := strconv.Atoi(config.SimMaxDelayMs)
	if err != nil || maxMs <= minMs {
		return 0, 0, false
	}

	return time.Duration(minMs) * time.Millisecond, time.Duration(maxMs) * time.Millisecond, true
}
