// Package commands contains business operations that modify dispatch state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: constructor validation, then a
// single dispatcher call that executes the whole transition atomically.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// Dispatcher is the single mutation boundary command handlers depend on.
// Every method executes as one atomic unit; handlers never compose partial
// operations themselves.
type Dispatcher interface {
	RegisterDriver(ctx context.Context, aggregate *driver.Driver) error
	PlaceOrder(ctx context.Context, customerID kernel.UUID, items []string, totalPrice float64) (services.OrderView, error)
	AcceptNextOrder(ctx context.Context, driverID kernel.UUID) (services.OrderView, error)
	AdvanceOrder(ctx context.Context, orderID kernel.UUID) (services.OrderView, error)
	RateDriver(ctx context.Context, driverID kernel.UUID, rating int) error
}
