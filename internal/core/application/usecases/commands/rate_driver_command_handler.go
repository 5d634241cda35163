package commands

import (
	"context"
)

// RateDriverCommandHandler handles driver rating submissions.
// Rating is independent of the delivery lifecycle: it never touches order or
// pool state.
type RateDriverCommandHandler struct {
	dispatcher Dispatcher
}

// NewRateDriverCommandHandler creates a handler for driver ratings.
func NewRateDriverCommandHandler(dispatcher Dispatcher) RateDriverCommandHandler {
	return RateDriverCommandHandler{
		dispatcher: dispatcher,
	}
}

// Handle processes the rating command.
func (h *RateDriverCommandHandler) Handle(ctx context.Context, cmd RateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.dispatcher.RateDriver(ctx, cmd.DriverID(), cmd.Rating())
}
