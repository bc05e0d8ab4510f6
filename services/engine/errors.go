package engine

import "errors"

var (
	// ErrConfigMissing means BusinessRules were never loaded or configured.
	// Callers must treat the result as "not computable yet", not as
	// confirmed unavailability.
	ErrConfigMissing = errors.New("business rules not configured")

	// ErrNoWorkingHours means the provider has no working window for the
	// requested weekday. Distinct from ErrConfigMissing so callers can map
	// it to an empty slot list without masking configuration bugs.
	ErrNoWorkingHours = errors.New("no working hours for weekday")

	// ErrBelowMinimumDuration rejects quotes under the 120-minute floor.
	ErrBelowMinimumDuration = errors.New("total duration below 120-minute minimum")

	// ErrInvalidArrangement rejects unknown provider arrangements.
	ErrInvalidArrangement = errors.New("arrangement must be \"split\" or \"multiply\"")

	// ErrNonSequentialDates rejects quote days whose dates do not strictly increase.
	ErrNonSequentialDates = errors.New("quote day dates must be strictly increasing")
)
