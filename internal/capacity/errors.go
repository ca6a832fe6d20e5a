package capacity

import "errors"

var (
	// ErrInvalidDateRange is returned when a date range is malformed or the
	// start date falls after the end date.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrFocusFactor is returned when a focus factor is outside (0, 1].
	ErrFocusFactor = errors.New("focus factor must be in (0, 1]")

	// ErrElevatedAccess is returned when an operation needs time-off request
	// access but the service was configured without it.
	ErrElevatedAccess = errors.New("operation requires time-off access")
)
