package discount

import "time"

// BookingContext is the candidate booking a code is checked against.
// BookingAmount is the undiscounted stay total.
type BookingContext struct {
	RoomID        int64
	UserID        *int64
	BookingAmount float64
	CheckIn       *time.Time
	CheckOut      *time.Time
}

// Result is the outcome of the eligibility chain.
type Result struct {
	Valid  bool
	Reason Reason
}

type ValidateCodeRequest struct {
	Code          string  `json:"code" binding:"required"`
	RoomID        int64   `json:"room_id" binding:"required"`
	UserID        *int64  `json:"user_id"`
	BookingAmount float64 `json:"booking_amount" binding:"required,gt=0"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
}

type ValidateCodeResponse struct {
	Valid  bool    `json:"valid"`
	Amount float64 `json:"amount,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

type CreateDiscountRequest struct {
	Code             string   `json:"code" binding:"required"`
	Type             string   `json:"type" binding:"required,oneof=percentage fixed_amount free_night"`
	Value            float64  `json:"value" binding:"required,gt=0"`
	MaxDiscount      *float64 `json:"max_discount"`
	MinBookingAmount *float64 `json:"min_booking_amount"`
	ValidFrom        string   `json:"valid_from"`
	ValidTo          string   `json:"valid_to"`
	UsageLimit       *int     `json:"usage_limit"`
	UserLimit        *int     `json:"user_limit"`
	ApplicableTo     string   `json:"applicable_to" binding:"required,oneof=all_rooms specific_rooms specific_users"`
	RoomIDs          []int64  `json:"room_ids"`
	UserIDs          []int64  `json:"user_ids"`
	ExcludeDates     []string `json:"exclude_dates"`
	BlackoutDates    []string `json:"blackout_dates"`
}
