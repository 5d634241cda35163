package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// RegisterDriverCommandHandler handles driver registration.
// Assigns a fresh identifier and hands the new aggregate to the dispatcher,
// which records it and makes it matchable.
type RegisterDriverCommandHandler struct {
	dispatcher Dispatcher
}

// NewRegisterDriverCommandHandler creates a handler for driver registration.
func NewRegisterDriverCommandHandler(dispatcher Dispatcher) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		dispatcher: dispatcher,
	}
}

// Handle processes the registration command and returns the new driver's ID.
func (h *RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	aggregate, err := driver.NewDriver(kernel.NewUUID(), cmd.Name())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.dispatcher.RegisterDriver(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	return aggregate.ID(), nil
}
