package queries

import (
	"context"
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves archived orders from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(db)
//	query := NewGetOrderHistoryQuery()
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order history: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d archived orders\n", len(orders))
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve all archived orders, newest first.
// Converts database types to domain types for consistency.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if h.db == nil {
		return nil, gorm.ErrInvalidDB
	}

	orders := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			items,
			total_price,
			created_at,
			status,
			driver_id
		FROM orders
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetOrderHistoryQueryResponse
		var id, customerID uuid.UUID
		var driverID *uuid.UUID
		var items string
		var status int
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&customerID,
			&items,
			&record.TotalPrice,
			&createdAt,
			&status,
			&driverID,
		)
		if err != nil {
			return nil, err
		}
		record.Status = order.Status(status).String()

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		record.ID = orderID

		custID, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, idErr
		}
		record.CustomerID = custID

		if driverID != nil {
			dID, idErr := kernel.UUIDFromBytes((*driverID)[:])
			if idErr != nil {
				return nil, idErr
			}
			record.DriverID = &dID
		}

		if err = json.Unmarshal([]byte(items), &record.Items); err != nil {
			return nil, err
		}
		record.CreatedAt = createdAt

		orders = append(orders, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
