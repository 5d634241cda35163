package driverarchive

import (
	"context"

	"dispatch/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDriverArchive implements DriverArchive using GORM.
type GormDriverArchive struct {
	db *gorm.DB
}

// NewGormDriverArchive creates a new GORM driver archive.
func NewGormDriverArchive(db *gorm.DB) *GormDriverArchive {
	return &GormDriverArchive{db: db}
}

// Upsert writes the driver record, inserting or overwriting by id.
func (r *GormDriverArchive) Upsert(ctx context.Context, record ports.DriverRecord) error {
	dto := fromRecord(record)

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
