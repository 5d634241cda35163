package simulation

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// Dispatcher is the dispatch surface the simulator drives. Implemented by
// the services dispatcher; the simulator holds no direct references to
// orders, drivers, or the pool.
type Dispatcher interface {
	PlaceOrder(ctx context.Context, customerID kernel.UUID, items []string, totalPrice float64) (services.OrderView, error)
	AcceptNextOrder(ctx context.Context, driverID kernel.UUID) (services.OrderView, error)
	AdvanceOrder(ctx context.Context, orderID kernel.UUID) (services.OrderView, error)
	RateDriver(ctx context.Context, driverID kernel.UUID, rating int) error
	Orders(ctx context.Context) ([]services.OrderView, error)
	Drivers(ctx context.Context) ([]services.DriverView, error)
}

// Default timing of the simulation loop: each iteration sleeps for
// minDelay plus a random spread up to delaySpread.
const (
	defaultMinDelay    = 200 * time.Millisecond
	defaultDelaySpread = 300 * time.Millisecond

	// stopTimeout bounds how long Stop waits for the loop to exit.
	stopTimeout = 2 * time.Second
)

// Event weights out of 100: below createWeight places an order, below
// createWeight+acceptWeight has a driver accept, the rest advances a
// delivery.
const (
	createWeight = 60
	acceptWeight = 30
)

type state int

const (
	stopped state = iota
	running
	stopping
)

// Simulator generates randomized dispatch traffic on a background goroutine.
//
// The lifecycle is stopped -> running -> stopped: Start is a no-op while
// running, Stop is cooperative and safe to call when the simulator never
// started. A stopped simulator can be started again.
//
// Every action goes through the Dispatcher interface, so the simulator
// contends for the same exclusion boundary as API traffic and can run
// concurrently with it.
type Simulator struct {
	dispatcher Dispatcher
	logger     *slog.Logger
	rng        *rand.Rand

	minDelay    time.Duration
	delaySpread time.Duration

	customers []kernel.UUID

	mu    sync.Mutex
	state state
	quit  chan struct{}
	done  chan struct{}
}

// NewSimulator creates a simulator over the given dispatcher with default
// timing and freshly seeded customer identities.
func NewSimulator(dispatcher Dispatcher, logger *slog.Logger) *Simulator {
	return &Simulator{
		dispatcher:  dispatcher,
		logger:      logger.With("component", "simulator"),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec //simulation traffic, not security
		minDelay:    defaultMinDelay,
		delaySpread: defaultDelaySpread,
		customers:   newCustomerIDs(seededCustomers),
	}
}

// SetTiming overrides the loop delay. Tests shrink it to keep runs fast.
// Must not be called while the simulator is running.
func (s *Simulator) SetTiming(minDelay, delaySpread time.Duration) {
	s.minDelay = minDelay
	s.delaySpread = delaySpread
}

// SeedDrivers registers the default driver roster with the dispatcher.
// Call once before the first Start.
func (s *Simulator) SeedDrivers(ctx context.Context, register func(ctx context.Context, name string) error) error {
	for _, name := range driverNames {
		if err := register(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// IsRunning reports whether the background loop is active.
func (s *Simulator) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == running
}

// Start launches the background loop. Starting an already running simulator
// is a no-op, as is starting one whose previous loop has not finished
// draining yet.
func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stopped {
		return
	}

	s.quit = make(chan struct{})
	s.done = make(chan struct{})
	s.state = running

	go s.loop(s.quit, s.done)
	s.logger.Info("simulation started")
}

// Stop signals the loop to exit and waits for it, bounded by stopTimeout.
// Stopping a simulator that is not running is a no-op. The stopped state is
// entered by the loop itself on exit, so a timed-out Stop leaves the
// simulator unrestartable until the stuck iteration finishes, never with two
// loops alive.
func (s *Simulator) Stop() {
	s.mu.Lock()
	if s.state != running {
		s.mu.Unlock()
		return
	}

	s.state = stopping
	close(s.quit)
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		s.logger.Info("simulation stopped")
	case <-time.After(stopTimeout):
		s.logger.Warn("simulation loop did not stop in time")
	}
}

func (s *Simulator) loop(quit <-chan struct{}, done chan<- struct{}) {
	defer func() {
		s.mu.Lock()
		s.state = stopped
		s.mu.Unlock()
		close(done)
	}()

	for {
		delay := s.minDelay + time.Duration(s.rng.Int63n(int64(s.delaySpread)))
		select {
		case <-quit:
			return
		case <-time.After(delay):
		}

		s.step(context.Background())
	}
}

// step performs one random action. Business rejections (empty queue, busy
// driver, nothing to advance) are normal under random traffic and are
// swallowed; anything else is logged.
func (s *Simulator) step(ctx context.Context) {
	roll := s.rng.Intn(100)

	var err error
	switch {
	case roll < createWeight:
		err = s.placeRandomOrder(ctx)
	case roll < createWeight+acceptWeight:
		err = s.acceptRandomDriver(ctx)
	default:
		err = s.advanceRandomOrder(ctx)
	}

	if err != nil && !isBenign(err) {
		s.logger.ErrorContext(ctx, "simulation step failed", "error", err)
	}
}

func (s *Simulator) placeRandomOrder(ctx context.Context) error {
	customerID := s.customers[s.rng.Intn(len(s.customers))]
	items, total := randomBasket(s.rng)

	_, err := s.dispatcher.PlaceOrder(ctx, customerID, items, total)
	return err
}

func (s *Simulator) acceptRandomDriver(ctx context.Context) error {
	drivers, err := s.dispatcher.Drivers(ctx)
	if err != nil {
		return err
	}

	available := make([]services.DriverView, 0, len(drivers))
	for _, view := range drivers {
		if view.Available {
			available = append(available, view)
		}
	}
	if len(available) == 0 {
		return nil
	}

	picked := available[s.rng.Intn(len(available))]
	_, err = s.dispatcher.AcceptNextOrder(ctx, picked.ID)
	return err
}

func (s *Simulator) advanceRandomOrder(ctx context.Context) error {
	orders, err := s.dispatcher.Orders(ctx)
	if err != nil {
		return err
	}

	active := make([]services.OrderView, 0, len(orders))
	for _, view := range orders {
		if view.Status == order.Accepted || view.Status == order.InProgress {
			active = append(active, view)
		}
	}
	if len(active) == 0 {
		return nil
	}

	picked := active[s.rng.Intn(len(active))]
	advanced, err := s.dispatcher.AdvanceOrder(ctx, picked.ID)
	if err != nil {
		return err
	}

	// A completed delivery earns the driver a random rating.
	if advanced.Status == order.Delivered && advanced.DriverID != nil {
		rating := driver.MinRating + s.rng.Intn(driver.MaxRating-driver.MinRating+1)
		return s.dispatcher.RateDriver(ctx, *advanced.DriverID, rating)
	}

	return nil
}

// isBenign reports whether an error is an expected business rejection under
// random concurrent traffic rather than a system fault.
func isBenign(err error) bool {
	return errors.Is(err, services.ErrNoOrderQueued) ||
		errors.Is(err, services.ErrPoolEmpty) ||
		errors.Is(err, driver.ErrDriverIsBusy) ||
		errors.Is(err, driver.ErrDriverIsNotAvailable) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrObjectNotFound)
}
