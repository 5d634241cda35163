// Package orderarchive provides data transfer objects and mapping functions
// for archiving orders. Handles the conversion between dispatch records and
// the relational representation.
package orderarchive

import (
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for archived orders.
// Indexed by status and driver assignment for efficient history queries.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index"`
	Items      string     `gorm:"type:text"`
	TotalPrice float64    `gorm:"type:numeric"`
	CreatedAt  time.Time  `gorm:"index"`
	Status     int        `gorm:"index"`
	DriverID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for archived orders.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromRecord converts an order record to its database representation.
// The item list is serialized to JSON text.
func fromRecord(record ports.OrderRecord) (OrderDTO, error) {
	items, err := json.Marshal(record.Items)
	if err != nil {
		return OrderDTO{}, err
	}

	var driverID *uuid.UUID
	if id := record.DriverID; id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:         record.ID.Bytes(),
		CustomerID: record.CustomerID.Bytes(),
		Items:      string(items),
		TotalPrice: record.TotalPrice,
		CreatedAt:  record.CreatedAt,
		Status:     int(record.Status),
		DriverID:   driverID,
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and driver assignment
// using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	var items []string
	if err = json.Unmarshal([]byte(dto.Items), &items); err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		items,
		dto.TotalPrice,
		dto.CreatedAt,
		order.Status(dto.Status),
		driverID,
	)
}
