package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
)

// Error is the JSON error envelope returned by all handlers.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	CustomerID string   `json:"customer_id"`
	Items      []string `json:"items"`
	TotalPrice float64  `json:"total_price"`
}

// RegisterDriverRequest is the body of POST /api/v1/drivers.
type RegisterDriverRequest struct {
	Name string `json:"name"`
}

// RegisterDriverResponse is the reply to a successful driver registration.
type RegisterDriverResponse struct {
	ID string `json:"id"`
}

// RateDriverRequest is the body of POST /api/v1/drivers/:id/ratings.
type RateDriverRequest struct {
	Rating int `json:"rating"`
}

// Order is the JSON shape of a live order view.
type Order struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Items      []string  `json:"items"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	Status     string    `json:"status"`
	DriverID   *string   `json:"driver_id,omitempty"`
}

// Driver is the JSON shape of a live driver view.
type Driver struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Available    bool    `json:"available"`
	CurrentOrder *string `json:"current_order,omitempty"`
	AvgRating    float64 `json:"avg_rating"`
	Activity     string  `json:"activity"`
}

// Dashboard is the JSON shape of the aggregate snapshot.
type Dashboard struct {
	Placed           int      `json:"placed"`
	Accepted         int      `json:"accepted"`
	InProgress       int      `json:"in_progress"`
	Delivered        int      `json:"delivered"`
	TotalOrders      int      `json:"total_orders"`
	QueuedOrders     int      `json:"queued_orders"`
	AvailableDrivers int      `json:"available_drivers"`
	Drivers          []Driver `json:"drivers"`
}

// ArchivedOrder is the JSON shape of one order history entry.
type ArchivedOrder struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Items      []string  `json:"items"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	Status     string    `json:"status"`
	DriverID   *string   `json:"driver_id,omitempty"`
}

// LeaderboardEntry is the JSON shape of one driver leaderboard row.
type LeaderboardEntry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Available   bool    `json:"available"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

func newOrder(view services.OrderView) Order {
	var driverID *string
	if view.DriverID != nil {
		s := view.DriverID.String()
		driverID = &s
	}

	return Order{
		ID:         view.ID.String(),
		CustomerID: view.CustomerID.String(),
		Items:      view.Items,
		TotalPrice: view.TotalPrice,
		CreatedAt:  view.CreatedAt,
		Status:     view.Status.String(),
		DriverID:   driverID,
	}
}

func newDriver(view services.DriverView) Driver {
	var currentOrder *string
	if view.CurrentOrder != nil {
		s := view.CurrentOrder.String()
		currentOrder = &s
	}

	return Driver{
		ID:           view.ID.String(),
		Name:         view.Name,
		Available:    view.Available,
		CurrentOrder: currentOrder,
		AvgRating:    view.AvgRating,
		Activity:     view.Activity,
	}
}

func newDashboard(snapshot services.Snapshot) Dashboard {
	drivers := make([]Driver, len(snapshot.Drivers))
	for i, view := range snapshot.Drivers {
		drivers[i] = newDriver(view)
	}

	return Dashboard{
		Placed:           snapshot.Placed,
		Accepted:         snapshot.Accepted,
		InProgress:       snapshot.InProgress,
		Delivered:        snapshot.Delivered,
		TotalOrders:      snapshot.Total(),
		QueuedOrders:     snapshot.QueuedOrders,
		AvailableDrivers: snapshot.AvailableDrivers,
		Drivers:          drivers,
	}
}

func newArchivedOrder(record queries.GetOrderHistoryQueryResponse) ArchivedOrder {
	var driverID *string
	if record.DriverID != nil {
		s := record.DriverID.String()
		driverID = &s
	}

	return ArchivedOrder{
		ID:         record.ID.String(),
		CustomerID: record.CustomerID.String(),
		Items:      record.Items,
		TotalPrice: record.TotalPrice,
		CreatedAt:  record.CreatedAt,
		Status:     record.Status,
		DriverID:   driverID,
	}
}

func newLeaderboardEntry(record queries.GetDriverLeaderboardQueryResponse) LeaderboardEntry {
	return LeaderboardEntry{
		ID:          record.ID.String(),
		Name:        record.Name,
		Available:   record.Available,
		AvgRating:   record.AvgRating,
		RatingCount: record.RatingCount,
	}
}
