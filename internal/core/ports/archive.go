package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRecord is the value snapshot of an order handed to the archive.
// Records are plain copies taken under the dispatcher's lock, so archiving
// can proceed without holding any reference to live aggregates.
type OrderRecord struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Items      []string
	TotalPrice float64
	CreatedAt  time.Time
	Status     order.Status
	DriverID   *kernel.UUID
}

// DriverRecord is the value snapshot of a driver handed to the archive.
type DriverRecord struct {
	ID          kernel.UUID
	Name        string
	Available   bool
	AvgRating   float64
	RatingCount int
}

// OrderArchive persists order history outside the in-memory dispatch state.
// Archiving is asynchronous and best-effort: the dispatch core never blocks
// on it, and the archive may briefly lag the live state.
type OrderArchive interface {
	// Upsert writes the order record, inserting or overwriting by id.
	Upsert(ctx context.Context, record OrderRecord) error

	// Get retrieves an archived order by its unique identifier,
	// reconstructed as a domain aggregate.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// DriverArchive persists driver records (availability and rolling rating)
// for history and leaderboard queries.
type DriverArchive interface {
	// Upsert writes the driver record, inserting or overwriting by id.
	Upsert(ctx context.Context, record DriverRecord) error
}

// ArchiveUnitOfWork is a transaction boundary over both archive repositories,
// so one archiving sweep lands atomically.
type ArchiveUnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Safe to defer: rolling back after a commit is a no-op.
	Rollback(ctx context.Context) error

	// OrderArchive returns an OrderArchive bound to the current transaction.
	OrderArchive() OrderArchive

	// DriverArchive returns a DriverArchive bound to the current transaction.
	DriverArchive() DriverArchive
}

// ArchiveUnitOfWorkFactory creates a fresh unit of work per archiving sweep,
// keeping concurrent sweeps isolated.
type ArchiveUnitOfWorkFactory interface {
	Create() ArchiveUnitOfWork
}
