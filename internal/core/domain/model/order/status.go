package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Placed ──> Accepted ──> InProgress ──> Delivered
//
// No transition skips a state and no transition reverses. Placed is the only
// initial state; Delivered is terminal.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when an order is first created.
	// Orders in this status are waiting in the intake queue for a driver.
	Placed

	// Accepted indicates a driver has been assigned to the order.
	Accepted

	// InProgress indicates the assigned driver is delivering the order.
	InProgress

	// Delivered indicates the order has been successfully delivered.
	// This is a final state with no further transitions allowed.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Placed:     "Placed",
		Accepted:   "Accepted",
		InProgress: "InProgress",
		Delivered:  "Delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:     "Placed",
		Accepted:   "Accepted",
		InProgress: "InProgress",
		Delivered:  "Delivered",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Placed, Accepted, InProgress, Delivered.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateAccept checks if the status allows driver assignment without
// performing the transition. Only Placed orders can be accepted: an order
// that already has a driver must not be handed to a second one.
func (s Status) ValidateAccept() error {
	if s != Placed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment.
//
// Business Rules:
//   - Placed orders must not have a driver assigned
//   - Accepted, InProgress, and Delivered orders must have a driver assigned
func (s Status) ValidateCanHaveDriver(driver bool) error {
	if driver && s != Accepted && s != InProgress && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !driver && (s == Accepted || s == InProgress || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Placed -> Accepted
//
// Returns:
//   - (Accepted, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Accept() (Status, error) {
	if err := s.ValidateAccept(); err != nil {
		return 0, err
	}

	return Accepted, nil
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - Accepted -> InProgress
//
// Returns:
//   - (InProgress, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Start() (Status, error) {
	if s != Accepted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start delivery", s.String()),
		)
	}

	return InProgress, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - InProgress -> Delivered
//
// Delivered is a final state with no further transitions possible.
//
// Returns:
//   - (Delivered, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Deliver() (Status, error) {
	if s != InProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}

	return Delivered, nil
}

// IsTerminal reports whether the status is the final state of the lifecycle.
func (s Status) IsTerminal() bool {
	return s == Delivered
}
