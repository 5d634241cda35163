package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// AcceptNextOrderCommandHandler handles driver-initiated acceptance of the
// oldest queued order. The dispatcher rejects drivers that are unavailable or
// already carrying an order, and returns services.ErrNoOrderQueued when the
// intake queue is empty.
type AcceptNextOrderCommandHandler struct {
	dispatcher Dispatcher
}

// NewAcceptNextOrderCommandHandler creates a handler for order acceptance.
func NewAcceptNextOrderCommandHandler(dispatcher Dispatcher) AcceptNextOrderCommandHandler {
	return AcceptNextOrderCommandHandler{
		dispatcher: dispatcher,
	}
}

// Handle processes the acceptance command and returns a view of the accepted
// order.
func (h *AcceptNextOrderCommandHandler) Handle(ctx context.Context, cmd AcceptNextOrderCommand) (services.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return services.OrderView{}, err
	}

	return h.dispatcher.AcceptNextOrder(ctx, cmd.DriverID())
}
