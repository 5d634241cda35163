// Package driverregistry provides the in-memory implementation of the
// authoritative driver registry.
package driverregistry

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Registry keeps all driver aggregates in memory, indexed by id. Listings
// preserve registration order so selection and rendering stay deterministic.
//
// Registry is not safe for concurrent use on its own; the dispatcher is the
// exclusive-access boundary around it.
type Registry struct {
	byID  map[kernel.UUID]*driver.Driver
	order []kernel.UUID
}

// NewRegistry creates an empty driver registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[kernel.UUID]*driver.Driver),
	}
}

// Add registers a new driver.
// The driver must be valid and not already registered.
func (r *Registry) Add(_ context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.byID[aggregate.ID()]; ok {
		return errs.NewValueIsInvalidError("driver already exists")
	}

	r.byID[aggregate.ID()] = aggregate
	r.order = append(r.order, aggregate.ID())
	return nil
}

// Get retrieves a driver by id.
func (r *Registry) Get(_ context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	aggregate, ok := r.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id.String())
	}
	return aggregate, nil
}

// GetAll returns all registered drivers in registration order.
func (r *Registry) GetAll(_ context.Context) ([]*driver.Driver, error) {
	out := make([]*driver.Driver, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// GetAllAvailable returns the drivers currently accepting work,
// in registration order.
func (r *Registry) GetAllAvailable(_ context.Context) ([]*driver.Driver, error) {
	out := make([]*driver.Driver, 0, len(r.order))
	for _, id := range r.order {
		if d := r.byID[id]; d.IsAvailable() {
			out = append(out, d)
		}
	}
	return out, nil
}
