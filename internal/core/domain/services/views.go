package services

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Activity labels describe what a driver is doing, derived from the status of
// its current order.
const (
	ActivityIdle       = "Idle"
	ActivityPickingUp  = "Picking up"
	ActivityDelivering = "Delivering"
)

// OrderView is a point-in-time value copy of an order, safe to hold and read
// outside the dispatch lock.
type OrderView struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Items      []string
	TotalPrice float64
	CreatedAt  time.Time
	Status     order.Status
	DriverID   *kernel.UUID
}

// DriverView is a point-in-time value copy of a driver, safe to hold and read
// outside the dispatch lock.
type DriverView struct {
	ID           kernel.UUID
	Name         string
	Available    bool
	CurrentOrder *kernel.UUID
	AvgRating    float64
	Activity     string
}

// Snapshot is a consistent aggregate view of the whole dispatch state,
// taken atomically.
type Snapshot struct {
	Placed           int
	Accepted         int
	InProgress       int
	Delivered        int
	QueuedOrders     int
	PoolSize         int
	AvailableDrivers int
	Drivers          []DriverView
}

// Total returns the number of orders across all statuses.
func (s Snapshot) Total() int {
	return s.Placed + s.Accepted + s.InProgress + s.Delivered
}

func newOrderView(aggregate *order.Order) OrderView {
	return OrderView{
		ID:         aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		Items:      aggregate.Items(),
		TotalPrice: aggregate.TotalPrice(),
		CreatedAt:  aggregate.CreatedAt(),
		Status:     aggregate.Status(),
		DriverID:   aggregate.Driver(),
	}
}
