package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrNoOrderQueued is returned when a driver tries to accept an order but the
// intake queue is empty. Like ErrPoolEmpty, this is a normal outcome that
// callers skip past, not a failure.
var ErrNoOrderQueued = errors.New("no order queued for assignment")

// Dispatcher couples the order store, the driver pool, and the driver
// registry. It is the only component permitted to perform multi-step
// transactions spanning all three, and every compound sequence — placing with
// auto-assignment, driver-initiated acceptance, advancing a delivery —
// executes under a single mutex as one atomic unit.
//
// The lock guards the three structures jointly: interleaving two sequences
// can never leave an order double-assigned or a driver both available and
// carrying a current order. Read accessors take the same lock and return
// value copies, so observers never see a half-applied transition.
//
// The dispatcher also tracks which aggregates changed since the last
// DrainChanges call, feeding the asynchronous archive.
type Dispatcher struct {
	mu       sync.Mutex
	orders   ports.OrderStore
	registry ports.DriverRegistry
	pool     *DriverPool
	logger   *slog.Logger

	dirtyOrders  map[kernel.UUID]*order.Order
	dirtyDrivers map[kernel.UUID]*driver.Driver
}

// NewDispatcher creates a dispatcher over the given store, registry, and pool.
// The dispatcher takes exclusive ownership of all three: no other component
// may mutate them once dispatching begins.
func NewDispatcher(
	orders ports.OrderStore,
	registry ports.DriverRegistry,
	pool *DriverPool,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		orders:       orders,
		registry:     registry,
		pool:         pool,
		logger:       logger.With("component", "dispatcher"),
		dirtyOrders:  make(map[kernel.UUID]*order.Order),
		dirtyDrivers: make(map[kernel.UUID]*driver.Driver),
	}
}

// RegisterDriver adds a driver to the registry and, if it is available,
// to the selection pool.
func (d *Dispatcher) RegisterDriver(ctx context.Context, aggregate *driver.Driver) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.registry.Add(ctx, aggregate); err != nil {
		return err
	}
	if err := d.pool.Add(aggregate); err != nil {
		return err
	}

	d.dirtyDrivers[aggregate.ID()] = aggregate
	return nil
}

// PlaceOrder creates an order in Placed status and immediately tries to match
// the intake queue against the best pooled driver.
//
// The assignment follows FIFO intake: when a driver is available, the order
// matched is the oldest queued one, which may or may not be the order just
// placed. An empty pool is a normal outcome — the new order simply stays
// queued.
//
// Returns a view of the placed order reflecting any assignment made.
func (d *Dispatcher) PlaceOrder(ctx context.Context, customerID kernel.UUID, items []string, totalPrice float64) (OrderView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	placed, err := order.NewOrder(kernel.NewUUID(), customerID, items, totalPrice)
	if err != nil {
		return OrderView{}, err
	}
	if err = d.orders.Add(ctx, placed); err != nil {
		return OrderView{}, err
	}
	d.dirtyOrders[placed.ID()] = placed

	if err = d.matchNext(ctx); err != nil {
		return OrderView{}, err
	}

	return newOrderView(placed), nil
}

// matchNext pops the best pooled driver and assigns it the head of the intake
// queue. An empty pool or empty queue leaves everything untouched.
// Must be called with the dispatcher lock held.
func (d *Dispatcher) matchNext(ctx context.Context) error {
	best, err := d.pool.PopBest()
	if errors.Is(err, ErrPoolEmpty) {
		return nil
	}
	if err != nil {
		return err
	}

	accepted, err := d.orders.AcceptNext(ctx, best.ID())
	if err != nil {
		// The driver was not consumed; put it back so it stays matchable.
		d.pool.Add(best) //nolint:errcheck // driver came from the pool and is still valid
		if errors.Is(err, ports.ErrIntakeEmpty) {
			return nil
		}
		return err
	}

	if err = best.Assign(accepted.ID()); err != nil {
		return err
	}

	d.dirtyOrders[accepted.ID()] = accepted
	d.dirtyDrivers[best.ID()] = best
	d.logger.DebugContext(ctx, "order assigned",
		"order_id", accepted.ID().String(), "driver_id", best.ID().String())
	return nil
}

// AcceptNextOrder is the driver-initiated acceptance of the oldest queued
// order.
//
// Preconditions, verified against the registry with no state change on
// failure: the driver must exist, be available, and have no current order
// (double-booking is rejected here, not left to callers). On success the
// order transition, the driver's assignment, and the pool removal happen as
// one unit.
//
// Returns ErrNoOrderQueued when the intake queue is empty.
func (d *Dispatcher) AcceptNextOrder(ctx context.Context, driverID kernel.UUID) (OrderView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	aggregate, err := d.registry.Get(ctx, driverID)
	if err != nil {
		return OrderView{}, err
	}
	if aggregate.CurrentOrder() != nil {
		return OrderView{}, driver.ErrDriverIsBusy
	}
	if !aggregate.IsAvailable() {
		return OrderView{}, driver.ErrDriverIsNotAvailable
	}

	accepted, err := d.orders.AcceptNext(ctx, driverID)
	if errors.Is(err, ports.ErrIntakeEmpty) {
		return OrderView{}, ErrNoOrderQueued
	}
	if err != nil {
		return OrderView{}, err
	}

	if err = aggregate.Assign(accepted.ID()); err != nil {
		return OrderView{}, err
	}
	d.pool.Remove(aggregate)

	d.dirtyOrders[accepted.ID()] = accepted
	d.dirtyDrivers[aggregate.ID()] = aggregate
	d.logger.DebugContext(ctx, "order accepted",
		"order_id", accepted.ID().String(), "driver_id", driverID.String())
	return newOrderView(accepted), nil
}

// AdvanceOrder moves an order one step along its lifecycle.
//
// Accepted orders start delivery with no side effects beyond the status
// change. InProgress orders are delivered: in the same critical section the
// assigned driver's current order is cleared, its availability is restored,
// and it is re-inserted into the selection pool — omitting that last step
// would silently exclude the driver from all future matching.
//
// Placed and Delivered orders cannot be advanced.
func (d *Dispatcher) AdvanceOrder(ctx context.Context, orderID kernel.UUID) (OrderView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	aggregate, err := d.orders.Get(ctx, orderID)
	if err != nil {
		return OrderView{}, err
	}

	switch aggregate.Status() {
	case order.Accepted:
		if err = aggregate.Start(); err != nil {
			return OrderView{}, err
		}

	case order.InProgress:
		if err = aggregate.Deliver(); err != nil {
			return OrderView{}, err
		}
		if err = d.releaseDriver(ctx, aggregate); err != nil {
			return OrderView{}, err
		}

	default:
		return OrderView{}, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order cannot be advanced", aggregate.Status()))
	}

	d.dirtyOrders[aggregate.ID()] = aggregate
	d.logger.DebugContext(ctx, "order advanced",
		"order_id", aggregate.ID().String(), "status", aggregate.Status().String())
	return newOrderView(aggregate), nil
}

// releaseDriver finishes the assigned driver's delivery and returns it to the
// selection pool. Must be called with the dispatcher lock held.
func (d *Dispatcher) releaseDriver(ctx context.Context, delivered *order.Order) error {
	driverID := delivered.Driver()
	if driverID == nil {
		return errs.NewValueIsRequiredError("driverId")
	}

	aggregate, err := d.registry.Get(ctx, *driverID)
	if err != nil {
		return err
	}
	if err = aggregate.CompleteDelivery(); err != nil {
		return err
	}
	if err = d.pool.Add(aggregate); err != nil {
		return err
	}

	d.dirtyDrivers[aggregate.ID()] = aggregate
	return nil
}

// RateDriver appends a rating in [1,5] to the driver's rolling buffer and
// recomputes the average. Rating is independent of the delivery lifecycle:
// it never touches order or pool state.
func (d *Dispatcher) RateDriver(ctx context.Context, driverID kernel.UUID, rating int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	aggregate, err := d.registry.Get(ctx, driverID)
	if err != nil {
		return err
	}
	if err = aggregate.AddRating(rating); err != nil {
		return err
	}

	d.dirtyDrivers[aggregate.ID()] = aggregate
	return nil
}

// Order returns a point-in-time view of a single order.
func (d *Dispatcher) Order(ctx context.Context, orderID kernel.UUID) (OrderView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	aggregate, err := d.orders.Get(ctx, orderID)
	if err != nil {
		return OrderView{}, err
	}
	return newOrderView(aggregate), nil
}

// Orders returns point-in-time views of all orders.
func (d *Dispatcher) Orders(ctx context.Context) ([]OrderView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(all))
	for _, aggregate := range all {
		views = append(views, newOrderView(aggregate))
	}
	return views, nil
}

// Drivers returns point-in-time views of all drivers, with the activity label
// derived from the current order's status.
func (d *Dispatcher) Drivers(ctx context.Context) ([]DriverView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.driverViews(ctx)
}

// PoolSize returns the number of drivers currently in the selection pool.
func (d *Dispatcher) PoolSize(_ context.Context) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pool.Size()
}

// Snapshot returns a consistent aggregate view for observers: order counts
// per status, the intake queue depth, and per-driver activity. The whole
// snapshot is taken under the dispatch lock, so it can never reflect a
// half-applied transition.
func (d *Dispatcher) Snapshot(ctx context.Context) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	counts, err := d.orders.CountByStatus(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	queued, err := d.orders.QueuedCount(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	drivers, err := d.driverViews(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	available := 0
	for _, view := range drivers {
		if view.Available {
			available++
		}
	}

	return Snapshot{
		Placed:           counts[order.Placed],
		Accepted:         counts[order.Accepted],
		InProgress:       counts[order.InProgress],
		Delivered:        counts[order.Delivered],
		QueuedOrders:     queued,
		PoolSize:         d.pool.Size(),
		AvailableDrivers: available,
		Drivers:          drivers,
	}, nil
}

// DrainChanges returns value records of every order and driver modified since
// the previous call and resets the tracking. Records are copies taken under
// the lock; the caller may persist them without further synchronization.
func (d *Dispatcher) DrainChanges(_ context.Context) ([]ports.OrderRecord, []ports.DriverRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()

	orderRecords := make([]ports.OrderRecord, 0, len(d.dirtyOrders))
	for _, aggregate := range d.dirtyOrders {
		orderRecords = append(orderRecords, newOrderRecord(aggregate))
	}
	driverRecords := make([]ports.DriverRecord, 0, len(d.dirtyDrivers))
	for _, aggregate := range d.dirtyDrivers {
		driverRecords = append(driverRecords, newDriverRecord(aggregate))
	}

	clear(d.dirtyOrders)
	clear(d.dirtyDrivers)
	return orderRecords, driverRecords
}

// RequeueChanges re-marks aggregates as dirty after a failed archive sweep,
// so their records are drained again by the next one. An aggregate that was
// modified again since the drain is already dirty and is left alone: the
// pending entry carries newer state than the returned record. Unknown ids are
// skipped.
func (d *Dispatcher) RequeueChanges(ctx context.Context, orders []ports.OrderRecord, drivers []ports.DriverRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, record := range orders {
		if _, ok := d.dirtyOrders[record.ID]; ok {
			continue
		}
		aggregate, err := d.orders.Get(ctx, record.ID)
		if err != nil {
			continue
		}
		d.dirtyOrders[record.ID] = aggregate
	}

	for _, record := range drivers {
		if _, ok := d.dirtyDrivers[record.ID]; ok {
			continue
		}
		aggregate, err := d.registry.Get(ctx, record.ID)
		if err != nil {
			continue
		}
		d.dirtyDrivers[record.ID] = aggregate
	}
}

// driverViews builds driver views with activity labels.
// Must be called with the dispatcher lock held.
func (d *Dispatcher) driverViews(ctx context.Context) ([]DriverView, error) {
	all, err := d.registry.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]DriverView, 0, len(all))
	for _, aggregate := range all {
		views = append(views, DriverView{
			ID:           aggregate.ID(),
			Name:         aggregate.Name(),
			Available:    aggregate.IsAvailable(),
			CurrentOrder: aggregate.CurrentOrder(),
			AvgRating:    aggregate.AvgRating(),
			Activity:     d.driverActivity(ctx, aggregate),
		})
	}
	return views, nil
}

// driverActivity derives the activity label from the current order's status.
// Must be called with the dispatcher lock held.
func (d *Dispatcher) driverActivity(ctx context.Context, aggregate *driver.Driver) string {
	orderID := aggregate.CurrentOrder()
	if orderID == nil {
		return ActivityIdle
	}

	current, err := d.orders.Get(ctx, *orderID)
	if err != nil {
		return ActivityIdle
	}

	switch current.Status() {
	case order.Accepted:
		return ActivityPickingUp
	case order.InProgress:
		return ActivityDelivering
	default:
		return ActivityIdle
	}
}

func newOrderRecord(aggregate *order.Order) ports.OrderRecord {
	return ports.OrderRecord{
		ID:         aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		Items:      aggregate.Items(),
		TotalPrice: aggregate.TotalPrice(),
		CreatedAt:  aggregate.CreatedAt(),
		Status:     aggregate.Status(),
		DriverID:   aggregate.Driver(),
	}
}

func newDriverRecord(aggregate *driver.Driver) ports.DriverRecord {
	return ports.DriverRecord{
		ID:          aggregate.ID(),
		Name:        aggregate.Name(),
		Available:   aggregate.IsAvailable(),
		AvgRating:   aggregate.AvgRating(),
		RatingCount: aggregate.RatingCount(),
	}
}
