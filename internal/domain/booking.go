package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// IsActive reports whether the status counts toward room availability.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking holds a stay over the half-open date range [CheckIn, CheckOut):
// the guest occupies every night from CheckIn up to but not including CheckOut.
type Booking struct {
	ID             int64         `json:"id"`
	Reference      string        `json:"reference"`
	RoomID         int64         `json:"room_id" validate:"required"`
	UserID         int64         `json:"user_id" validate:"required"`
	CheckIn        time.Time     `json:"check_in" validate:"required"`
	CheckOut       time.Time     `json:"check_out" validate:"required"`
	Status         BookingStatus `json:"status"`
	TotalPrice     float64       `json:"total_price" validate:"gte=0"`
	DiscountID     *int64        `json:"discount_id,omitempty"`
	DiscountAmount float64       `json:"discount_amount"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	CancelledAt    *time.Time    `json:"cancelled_at,omitempty"`

	CancellationReason string `json:"cancellation_reason,omitempty"`
}

// BookedRange is the slice of a booking the availability check cares about.
type BookedRange struct {
	BookingID int64     `json:"booking_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
}
