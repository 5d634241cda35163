package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// AdvanceOrderCommandHandler handles lifecycle progression of an order.
// Delivery completion also releases the assigned driver back to the pool;
// that coupling lives entirely inside the dispatcher.
type AdvanceOrderCommandHandler struct {
	dispatcher Dispatcher
}

// NewAdvanceOrderCommandHandler creates a handler for order progression.
func NewAdvanceOrderCommandHandler(dispatcher Dispatcher) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		dispatcher: dispatcher,
	}
}

// Handle processes the advance command and returns a view of the order in
// its new status.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (services.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return services.OrderView{}, err
	}

	return h.dispatcher.AdvanceOrder(ctx, cmd.OrderID())
}
