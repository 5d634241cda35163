package driver

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrDriverIsNotAvailable is returned when assigning an order to a driver
	// that is not accepting work.
	ErrDriverIsNotAvailable = errors.New("driver is not available")
	// ErrDriverIsBusy is returned when assigning an order to a driver that
	// already has one in flight.
	ErrDriverIsBusy = errors.New("driver already has a current order")
	// ErrNoActiveDelivery is returned when completing a delivery for a driver
	// without a current order.
	ErrNoActiveDelivery = errors.New("driver has no active delivery")
)

// Driver represents a delivery driver in the system.
// It is an aggregate root that manages driver identity, availability, the
// current order in flight, and the rolling rating.
//
// Key responsibilities:
//   - Managing driver identity (ID, name)
//   - Keeping availability and the current-order reference consistent
//   - Maintaining the rolling rating over the most recent deliveries
//
// Business rules:
//   - Driver must have a valid UUID and a non-empty name
//   - Availability is false exactly when a current order is set: the pair
//     changes together through Assign and CompleteDelivery, never separately
//   - Ratings must lie in [1,5]; the rolling average covers the last 10 only
//
// The rating buffer is updated independently of the delivery cycle: a rating
// can arrive for a driver at any time.
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// available reports whether the driver can take a new order
	available bool
	// currentOrder is the order in flight (nil when idle)
	currentOrder *kernel.UUID
	// ratings is the rolling rating buffer
	ratings *RatingBuffer
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver with the specified parameters.
// This is the only way to create a valid Driver instance.
//
// A new driver starts available, with no current order and an empty rating
// buffer (average 0.0).
//
// Parameters:
//   - id: Unique identifier for the driver (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//
// Returns the created driver, or an aggregated validation error if any
// parameter is invalid.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	driver := &Driver{
		available: true,
		ratings:   NewRatingBuffer(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
	); err != nil {
		return nil, err
	}

	return driver, nil
}

// IsEqual compares two drivers for equality based on their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate checks if the Driver was properly constructed using the NewDriver
// constructor. The zero value of Driver is invalid and will fail this
// validation.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the unique identifier of the driver.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the human-readable name of the driver.
func (d *Driver) Name() string {
	return d.name
}

// IsAvailable reports whether the driver can take a new order.
func (d *Driver) IsAvailable() bool {
	return d.available
}

// CurrentOrder returns the ID of the order the driver is working on.
// Returns nil when the driver is idle.
func (d *Driver) CurrentOrder() *kernel.UUID {
	return d.currentOrder
}

// AvgRating returns the rolling average over the most recent ratings.
// Returns 0.0 for a driver that has never been rated.
func (d *Driver) AvgRating() float64 {
	return d.ratings.Average()
}

// RatingCount returns the number of ratings currently in the rolling buffer.
func (d *Driver) RatingCount() int {
	return d.ratings.Count()
}

// Assign gives the driver an order to deliver.
//
// Preconditions, checked with no state change on failure:
//   - The order ID must be valid
//   - The driver must be available (ErrDriverIsNotAvailable)
//   - The driver must have no current order (ErrDriverIsBusy)
//
// On success the driver becomes unavailable and the order becomes the
// driver's current order — the pair always flips together.
func (d *Driver) Assign(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if d.currentOrder != nil {
		return ErrDriverIsBusy
	}
	if !d.available {
		return ErrDriverIsNotAvailable
	}

	d.currentOrder = &orderID
	d.available = false
	return nil
}

// CompleteDelivery finishes the driver's current delivery.
//
// The driver must have an order in flight (ErrNoActiveDelivery otherwise).
// On success the current order is cleared and the driver becomes available
// again — the pair always flips together.
func (d *Driver) CompleteDelivery() error {
	if d.currentOrder == nil {
		return ErrNoActiveDelivery
	}

	d.currentOrder = nil
	d.available = true
	return nil
}

// AddRating records a rating for the driver and recomputes the rolling
// average. Ratings outside [1,5] are rejected with no state change.
//
// Rating is independent of the delivery cycle: it never touches availability
// or the current order.
func (d *Driver) AddRating(rating int) error {
	return d.ratings.Add(rating)
}

// setID validates and sets the driver's unique identifier.
// This is a private method used only during construction.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setName validates and sets the driver's name.
// This is a private method used only during construction.
func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}
