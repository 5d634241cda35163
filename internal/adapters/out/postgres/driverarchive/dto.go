// Package driverarchive provides data transfer objects and mapping functions
// for archiving drivers.
package driverarchive

import (
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for archived drivers.
// Stores the precomputed rolling average so leaderboard queries never need
// the raw rating buffer.
type DriverDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"index"`
	Available   bool
	AvgRating   float64 `gorm:"index"`
	RatingCount int
}

// TableName specifies the database table name for archived drivers.
// Overrides GORM's default naming convention to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromRecord converts a driver record to its database representation.
func fromRecord(record ports.DriverRecord) DriverDTO {
	return DriverDTO{
		ID:          record.ID.Bytes(),
		Name:        record.Name,
		Available:   record.Available,
		AvgRating:   record.AvgRating,
		RatingCount: record.RatingCount,
	}
}
