package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrItemsAreRequired    = errors.New("items are required")
	ErrTotalPriceIsInvalid = errors.New("total price must not be negative")
)

// PlaceOrderCommand represents a request to place a new food order.
// Encapsulates the ordering customer, the item list, and the total price.
//
// Example:
//
//	customerID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(customerID, []string{"Pad Thai"}, 12.50)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(dispatcher)
//	view, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	items      []string
	totalPrice float64

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that the customer ID is valid, at least one item is present,
// and the total price is not negative.
func NewPlaceOrderCommand(customerID kernel.UUID, items []string, totalPrice float64) (PlaceOrderCommand, error) {
	orderCommand := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setCustomerID(customerID),
		orderCommand.setItems(items),
		orderCommand.setTotalPrice(totalPrice),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// CustomerID returns the identifier of the ordering customer.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the ordered item names.
func (c PlaceOrderCommand) Items() []string {
	return append([]string(nil), c.items...)
}

// TotalPrice returns the order total.
func (c PlaceOrderCommand) TotalPrice() float64 {
	return c.totalPrice
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []string) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = append([]string(nil), items...)
	return nil
}

func (c *PlaceOrderCommand) setTotalPrice(totalPrice float64) error {
	if totalPrice < 0 {
		return ErrTotalPriceIsInvalid
	}

	c.totalPrice = totalPrice
	return nil
}
