// Package services contains domain services that operate across aggregates.
package services

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrPoolEmpty is returned when popping from a pool with no members.
// An empty pool is a normal, frequent outcome during dispatch: callers must
// treat it as "no driver available this time", not as a failure.
var ErrPoolEmpty = errors.New("driver pool is empty")

// DriverPool is a priority selection structure over currently-available
// drivers, ordered by descending rolling average rating. Ties are broken by
// arrival order (first added wins), which keeps selection deterministic.
//
// The pool holds driver handles, never copies: a driver's rating or
// availability read through the pool is always the registry's current value.
// The pool owns only membership. Membership is not automatically kept in sync
// with availability changes — the dispatcher explicitly removes a driver when
// an assignment makes it unavailable and re-adds it when a delivery completes.
//
// DriverPool is not safe for concurrent use; the dispatcher serializes all
// access.
type DriverPool struct {
	entries map[kernel.UUID]poolEntry
	arrival uint64
}

// poolEntry pairs a pooled driver with its arrival sequence number,
// used for deterministic tie-breaking among equal ratings.
type poolEntry struct {
	driver  *driver.Driver
	arrival uint64
}

// NewDriverPool creates an empty driver pool.
func NewDriverPool() *DriverPool {
	return &DriverPool{
		entries: make(map[kernel.UUID]poolEntry),
	}
}

// Add inserts a driver into the pool.
//
// Unavailable drivers and existing members are silently skipped: callers add
// optimistically after availability transitions and must not need to track
// membership themselves. Returns a validation error only for an improperly
// constructed driver.
func (p *DriverPool) Add(d *driver.Driver) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if !d.IsAvailable() {
		return nil
	}
	if _, ok := p.entries[d.ID()]; ok {
		return nil
	}

	p.arrival++
	p.entries[d.ID()] = poolEntry{driver: d, arrival: p.arrival}
	return nil
}

// Remove removes a driver from the pool if present.
// It does not alter the driver's own state; flipping availability in the
// registry is the caller's responsibility.
func (p *DriverPool) Remove(d *driver.Driver) {
	if d == nil {
		return
	}
	delete(p.entries, d.ID())
}

// PopBest removes and returns the highest-rated pooled driver.
// Among equally-rated drivers the one added first wins.
// Returns ErrPoolEmpty when the pool has no members.
func (p *DriverPool) PopBest() (*driver.Driver, error) {
	var best *poolEntry
	for id := range p.entries {
		entry := p.entries[id]
		if best == nil ||
			entry.driver.AvgRating() > best.driver.AvgRating() ||
			(entry.driver.AvgRating() == best.driver.AvgRating() && entry.arrival < best.arrival) {
			best = &entry
		}
	}

	if best == nil {
		return nil, ErrPoolEmpty
	}

	delete(p.entries, best.driver.ID())
	return best.driver, nil
}

// Contains reports whether the driver is currently a pool member.
func (p *DriverPool) Contains(id kernel.UUID) bool {
	_, ok := p.entries[id]
	return ok
}

// IsEmpty reports whether the pool has no members.
func (p *DriverPool) IsEmpty() bool {
	return len(p.entries) == 0
}

// Size returns the number of pool members.
func (p *DriverPool) Size() int {
	return len(p.entries)
}

// Refresh reconciles pool membership against a snapshot of currently
// available drivers: any available driver missing from the pool is added.
//
// The reconciliation is additive-only. Drivers that became unavailable are
// never removed here — removal is always an explicit dispatcher action tied
// to the state transition that caused the unavailability.
func (p *DriverPool) Refresh(available []*driver.Driver) error {
	for _, d := range available {
		if err := p.Add(d); err != nil {
			return err
		}
	}
	return nil
}
