package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrRegisterDriverCommandIsNotConstructed = errors.New(
		"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
)

// RegisterDriverCommand represents a request to register a new driver.
// Registered drivers start available and immediately join the selection pool.
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	name string

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a command to register a driver.
// Validates that the name is not empty.
func NewRegisterDriverCommand(name string) (RegisterDriverCommand, error) {
	registerCommand := RegisterDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := registerCommand.setName(name); err != nil {
		return RegisterDriverCommand{}, err
	}

	return registerCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

// Name returns the driver's display name.
func (c RegisterDriverCommand) Name() string {
	return c.name
}

func (c *RegisterDriverCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}
