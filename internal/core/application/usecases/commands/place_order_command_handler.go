package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Placed orders enter the intake queue and are matched against the driver
// pool immediately when a driver is free.
type PlaceOrderCommandHandler struct {
	dispatcher Dispatcher
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(dispatcher Dispatcher) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		dispatcher: dispatcher,
	}
}

// Handle processes the order placement command and returns a view of the
// placed order, including any assignment made during placement.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (services.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return services.OrderView{}, err
	}

	return h.dispatcher.PlaceOrder(ctx, cmd.CustomerID(), cmd.Items(), cmd.TotalPrice())
}
