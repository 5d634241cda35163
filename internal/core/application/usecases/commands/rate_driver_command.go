package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRateDriverCommandIsNotConstructed = errors.New(
	"RateDriverCommand must be created via NewRateDriverCommand constructor",
)

// RateDriverCommand represents a customer rating for a driver after a
// delivery. Ratings feed the driver's rolling average, which drives pool
// ordering.
type RateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	rating   int

	guard guard.ConstructorGuard
}

// NewRateDriverCommand creates a command to rate a driver.
// Validates that the driver ID is valid and the rating is within [1, 5].
func NewRateDriverCommand(driverID kernel.UUID, rating int) (RateDriverCommand, error) {
	rateCommand := RateDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rateCommand.setDriverID(driverID),
		rateCommand.setRating(rating),
	); err != nil {
		return RateDriverCommand{}, err
	}

	return rateCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RateDriverCommand) Validate() error {
	return c.guard.Validate(ErrRateDriverCommandIsNotConstructed)
}

// DriverID returns the identifier of the rated driver.
func (c RateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Rating returns the rating value.
func (c RateDriverCommand) Rating() int {
	return c.rating
}

func (c *RateDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *RateDriverCommand) setRating(rating int) error {
	if rating < driver.MinRating || rating > driver.MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, driver.MinRating, driver.MaxRating)
	}

	c.rating = rating
	return nil
}
