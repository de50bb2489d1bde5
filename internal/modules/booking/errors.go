package booking

import "errors"

var (
	// ErrInvalidDateRange is returned when check_out is not after check_in.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrRoomUnavailable covers both an overlapping active booking and a
	// blocked date inside the requested range.
	ErrRoomUnavailable = errors.New("room not available")
	// ErrDiscountInvalid wraps the validator's reason.
	ErrDiscountInvalid = errors.New("discount not applicable")
	// ErrConflict surfaces after the one automatic retry of a transaction
	// that lost a concurrency race.
	ErrConflict = errors.New("booking conflict, please retry")
	ErrNotFound = errors.New("booking not found")

	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
