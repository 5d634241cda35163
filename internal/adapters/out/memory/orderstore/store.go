// Package orderstore provides the in-memory implementation of the order
// store: the random-access order index plus the FIFO intake queue of
// unassigned order ids.
package orderstore

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Store keeps all orders in memory, indexed by id, with a disjoint FIFO
// intake queue of ids awaiting driver assignment. Orders are never removed
// from the index; an id leaves the intake queue exactly once, when assigned.
//
// Store is not safe for concurrent use on its own; the dispatcher is the
// exclusive-access boundary around it.
type Store struct {
	byID   map[kernel.UUID]*order.Order
	placed []kernel.UUID
	intake []kernel.UUID
}

// NewStore creates an empty order store.
func NewStore() *Store {
	return &Store{
		byID: make(map[kernel.UUID]*order.Order),
	}
}

// Add stores a newly placed order and enqueues its id for assignment.
// The order must be valid and not already present.
func (s *Store) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := s.byID[aggregate.ID()]; ok {
		return errs.NewValueIsInvalidError("order already exists")
	}

	s.byID[aggregate.ID()] = aggregate
	s.placed = append(s.placed, aggregate.ID())
	if aggregate.Status() == order.Placed {
		s.intake = append(s.intake, aggregate.ID())
	}
	return nil
}

// AcceptNext pops the head of the intake queue and assigns it to the given
// driver, transitioning the order to Accepted.
// Returns ports.ErrIntakeEmpty when no order is queued.
func (s *Store) AcceptNext(_ context.Context, driverID kernel.UUID) (*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if len(s.intake) == 0 {
		return nil, ports.ErrIntakeEmpty
	}

	next := s.intake[0]
	aggregate, ok := s.byID[next]
	if !ok {
		// Orders are never deleted, so a dangling intake id means corruption.
		return nil, errs.NewObjectNotFoundError("order", next.String())
	}

	if err := aggregate.Accept(driverID); err != nil {
		return nil, err
	}

	s.intake = s.intake[1:]
	return aggregate, nil
}

// Get retrieves an order by id.
func (s *Store) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	aggregate, ok := s.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return aggregate, nil
}

// GetAll returns all orders in placement order.
// The returned slice is a fresh copy.
func (s *Store) GetAll(_ context.Context) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(s.placed))
	for _, id := range s.placed {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// CountByStatus returns the number of orders per lifecycle status.
func (s *Store) CountByStatus(_ context.Context) (map[order.Status]int, error) {
	counts := make(map[order.Status]int)
	for _, aggregate := range s.byID {
		counts[aggregate.Status()]++
	}
	return counts, nil
}

// QueuedCount returns the number of ids waiting in the intake queue.
func (s *Store) QueuedCount(_ context.Context) (int, error) {
	return len(s.intake), nil
}
