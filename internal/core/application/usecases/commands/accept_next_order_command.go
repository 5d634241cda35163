package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptNextOrderCommandIsNotConstructed = errors.New(
	"AcceptNextOrderCommand must be created via NewAcceptNextOrderCommand constructor",
)

// AcceptNextOrderCommand represents a driver's request to take the oldest
// queued order.
type AcceptNextOrderCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptNextOrderCommand creates a command for a driver to accept the next
// queued order. Validates that the driver ID is valid.
func NewAcceptNextOrderCommand(driverID kernel.UUID) (AcceptNextOrderCommand, error) {
	acceptCommand := AcceptNextOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := acceptCommand.setDriverID(driverID); err != nil {
		return AcceptNextOrderCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptNextOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptNextOrderCommandIsNotConstructed)
}

// DriverID returns the identifier of the accepting driver.
func (c AcceptNextOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *AcceptNextOrderCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
