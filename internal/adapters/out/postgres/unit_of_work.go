// Package postgres provides the GORM-based archive implementation.
// The archive is a write-behind copy of the in-memory dispatch state: records
// drained from the dispatcher are written in one transaction per sweep, so
// history and leaderboard queries read a consistent snapshot.
package postgres

import (
	"context"

	"dispatch/internal/adapters/out/postgres/driverarchive"
	"dispatch/internal/adapters/out/postgres/orderarchive"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates archive unit of work instances over a shared
// GORM connection. Each archiving sweep gets a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given database
// connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new archive unit of work ready for one sweep.
func (f *GormUnitOfWorkFactory) Create() ports.ArchiveUnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one archiving transaction across the order and
// driver archives. Implements the Unit of Work pattern using GORM's
// transaction capabilities.
//
// Example usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	for _, record := range orderRecords {
//	    if err := uow.OrderArchive().Upsert(ctx, record); err != nil {
//	        return err
//	    }
//	}
//
//	return uow.Commit(ctx)
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates a new database transaction.
// Multiple calls on the same instance are safe and will not create nested
// transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Rolling back with no active transaction is a no-op, which makes Rollback
// safe to defer alongside an explicit Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderArchive returns an order archive bound to the current transaction,
// or to the main connection when no transaction is active.
func (uow *GormUnitOfWork) OrderArchive() ports.OrderArchive {
	return orderarchive.NewGormOrderArchive(uow.conn())
}

// DriverArchive returns a driver archive bound to the current transaction,
// or to the main connection when no transaction is active.
func (uow *GormUnitOfWork) DriverArchive() ports.DriverArchive {
	return driverarchive.NewGormDriverArchive(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
