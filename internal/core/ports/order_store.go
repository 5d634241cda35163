// Package ports defines the contracts between the dispatch core and its
// collaborators. These interfaces establish boundaries between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrIntakeEmpty is returned by AcceptNext when no order is waiting for a
// driver. An empty intake queue is a normal outcome, not a failure.
var ErrIntakeEmpty = errors.New("intake queue is empty")

// OrderStore owns the canonical order records and their lifecycle. It keeps
// a FIFO intake queue of unassigned order ids separate from the random-access
// index of all orders. Orders are never deleted: a delivered order remains
// queryable for rating and history purposes.
//
// Implementations are not required to be safe for concurrent use; the
// dispatcher serializes all access.
type OrderStore interface {
	// Add stores a newly placed order and, while it is unassigned, appends
	// its id to the intake queue.
	Add(ctx context.Context, aggregate *order.Order) error

	// AcceptNext pops the head of the intake queue and assigns it to the
	// given driver, transitioning the order to Accepted. An order id leaves
	// the intake queue exactly once.
	// Returns ErrIntakeEmpty when no order is queued.
	AcceptNext(ctx context.Context, driverID kernel.UUID) (*order.Order, error)

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll returns all orders. The returned slice is a copy; the
	// aggregates themselves are shared handles guarded by the dispatcher.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// CountByStatus returns the number of orders per lifecycle status.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)

	// QueuedCount returns the number of order ids waiting in the intake queue.
	QueuedCount(ctx context.Context) (int, error)
}
