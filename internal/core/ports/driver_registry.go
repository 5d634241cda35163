package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRegistry holds the authoritative driver records: identity,
// availability, current-order reference, and the rolling rating.
//
// The registry hands out aggregate handles, never copies. The driver pool
// builds its ranking view over the same handles, so removing a driver from
// the pool can never desynchronize from the registry's record.
//
// Implementations are not required to be safe for concurrent use; the
// dispatcher serializes all access.
type DriverRegistry interface {
	// Add registers a new driver.
	// The driver must be valid and not already exist in the registry.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAll returns all registered drivers in registration order.
	GetAll(ctx context.Context) ([]*driver.Driver, error)

	// GetAllAvailable returns the drivers currently accepting work,
	// in registration order.
	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)
}
