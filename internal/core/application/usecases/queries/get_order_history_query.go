// Package queries contains read operations over the archived dispatch state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the dispatcher and read the archive tables directly,
// returning read models tailored to each use case.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves archived orders, newest first.
// The archive lags live state by up to one archival cycle, which is
// acceptable for reporting reads.
//
// Example:
//
//	query := NewGetOrderHistoryQuery()
//	handler := NewGetOrderHistoryQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve order history: %w", err)
//	}
type GetOrderHistoryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query to retrieve the order history.
// This is a parameterless query that fetches all archived orders.
func NewGetOrderHistoryQuery() GetOrderHistoryQuery {
	return GetOrderHistoryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// GetOrderHistoryQueryResponse represents one archived order in the read
// model.
type GetOrderHistoryQueryResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Items      []string
	TotalPrice float64
	CreatedAt  time.Time
	Status     string
	DriverID   *kernel.UUID
}
