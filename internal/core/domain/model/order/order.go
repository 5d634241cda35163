package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrItemsAreRequired is returned when attempting to create an order without line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order represents a food-delivery order. It is the aggregate root that
// manages the order lifecycle from placement through driver assignment to
// delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and customer identifier
//   - Must have at least one line item
//   - Status transitions follow the fixed lifecycle (Placed, Accepted,
//     InProgress, Delivered) with no skips and no reversals
//   - A driver is assigned if and only if the status is Accepted, InProgress,
//     or Delivered
//   - Can only be created through the NewOrder constructor
//
// Identity, line items, total price, and creation time are immutable after
// placement; only status and driver assignment change, and only through the
// validated methods below. Delivered orders are never deleted — they remain
// queryable for rating and history purposes.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the customer who placed the order
	customerID kernel.UUID

	// items are the ordered line item references
	items []string

	// totalPrice is computed at placement and never changes
	totalPrice float64

	// createdAt is the placement timestamp
	createdAt time.Time

	// status represents the current state in the order lifecycle
	status Status

	// driverID is the assigned driver's ID (nil until accepted)
	driverID *kernel.UUID

	// guard ensures the order was created via NewOrder
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Placed status with validation. This is the
// only way to create a valid Order, ensuring all business invariants are
// maintained.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customerID: Identifier of the placing customer (must be valid UUID)
//   - items: Ordered line item references (must be non-empty)
//   - totalPrice: Total price computed at placement (must not be negative)
//
// Returns the created order, or an aggregated validation error if any
// parameter is invalid.
func NewOrder(id kernel.UUID, customerID kernel.UUID, items []string, totalPrice float64) (*Order, error) {
	order := &Order{
		status:    Placed,
		createdAt: time.Now(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setItems(items),
		order.setTotalPrice(totalPrice),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state. Unlike NewOrder,
// which always starts the lifecycle at Placed, this constructor restores an
// order to its previously persisted status and driver assignment.
//
// The restored order must still satisfy every aggregate invariant: the status
// must be valid and the driver assignment must be consistent with it.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []string,
	totalPrice float64,
	createdAt time.Time,
	status Status,
	driverID *kernel.UUID,
) (*Order, error) {
	order := &Order{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setItems(items),
		order.setTotalPrice(totalPrice),
		order.setStatus(status, driverID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns the ordered line item references.
// The returned slice is a copy to prevent external modification.
func (o *Order) Items() []string {
	out := make([]string, len(o.items))
	copy(out, o.items)
	return out
}

// TotalPrice returns the total price computed at placement.
func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Driver returns the assigned driver's ID.
// Returns nil if no driver is assigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Accept assigns the order to a driver and updates the status to Accepted.
//
// This method enforces the following business rules:
//   - The driver ID must be valid
//   - The order must be in Placed status (no reassignment)
//
// After successful acceptance, Driver() returns the assigned driver's ID.
func (o *Order) Accept(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	return nil
}

// Start marks the order as in progress (the driver is delivering).
// The order must be in Accepted status.
func (o *Order) Start() error {
	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver marks the order as delivered.
//
// The order must be in InProgress status. Delivered is a final state with
// no further transitions; the driver assignment is kept for history.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the placing customer's identifier.
// This is a private method used only during construction.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

// setItems validates and sets the ordered line items.
// This is a private method used only during construction.
func (o *Order) setItems(items []string) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	o.items = make([]string, len(items))
	copy(o.items, items)
	return nil
}

// setTotalPrice validates and sets the order's total price.
// This is a private method used only during construction.
func (o *Order) setTotalPrice(totalPrice float64) error {
	if totalPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("%f is negative", totalPrice))
	}
	o.totalPrice = totalPrice
	return nil
}

// setStatus validates and sets the persisted status and driver assignment.
// This is a private method used only during restoration.
func (o *Order) setStatus(status Status, driverID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
		id := *driverID
		o.driverID = &id
	}
	o.status = status
	return nil
}
