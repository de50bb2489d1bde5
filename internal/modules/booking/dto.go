package booking

import "time"

// CreateBookingInput is the orchestrator's create request with parsed dates.
type CreateBookingInput struct {
	RoomID       int64
	UserID       int64
	CheckIn      time.Time
	CheckOut     time.Time
	DiscountCode string
}

// UpdateDatesInput moves an existing booking; nil fields keep their current
// value.
type UpdateDatesInput struct {
	BookingID int64
	RoomID    *int64
	CheckIn   *time.Time
	CheckOut  *time.Time
}

// AvailabilityQuote answers "can I book it and what would it cost".
type AvailabilityQuote struct {
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

type CreateBookingRequest struct {
	RoomID       int64  `json:"room_id" binding:"required"`
	UserID       int64  `json:"user_id" binding:"required"`
	CheckIn      string `json:"check_in" binding:"required"`
	CheckOut     string `json:"check_out" binding:"required"`
	DiscountCode string `json:"discount_code"`
}

type UpdateDatesRequest struct {
	RoomID   *int64  `json:"room_id"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}
