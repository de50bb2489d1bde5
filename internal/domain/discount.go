package domain

import "time"

type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
	DiscountFreeNight   DiscountType = "free_night"
)

type DiscountScope string

const (
	ScopeAllRooms      DiscountScope = "all_rooms"
	ScopeSpecificRooms DiscountScope = "specific_rooms"
	ScopeSpecificUsers DiscountScope = "specific_users"
)

type DiscountStatus string

const (
	DiscountActive   DiscountStatus = "active"
	DiscountInactive DiscountStatus = "inactive"
)

type Discount struct {
	ID     int64        `json:"id"`
	Code   string       `json:"code" validate:"required"`
	Type   DiscountType `json:"type" validate:"required,oneof=percentage fixed_amount free_night"`
	Value  float64      `json:"value" validate:"required,gt=0"`
	Status DiscountStatus `json:"status"`

	MaxDiscount      *float64   `json:"max_discount,omitempty"`
	MinBookingAmount *float64   `json:"min_booking_amount,omitempty"`
	ValidFrom        *time.Time `json:"valid_from,omitempty"`
	ValidTo          *time.Time `json:"valid_to,omitempty"`

	UsageLimit *int `json:"usage_limit,omitempty"`
	UsedCount  int  `json:"used_count"`
	// UserLimit caps how many bookings a single user may redeem the code on.
	UserLimit *int `json:"user_limit,omitempty"`

	ApplicableTo DiscountScope `json:"applicable_to" validate:"required,oneof=all_rooms specific_rooms specific_users"`
	RoomIDs      []int64       `json:"room_ids,omitempty"`
	UserIDs      []int64       `json:"user_ids,omitempty"`

	// ExcludeDates and BlackoutDates hold check-in dates on which the code
	// may not be applied. Both are normalized to midnight UTC at the
	// construction boundary.
	ExcludeDates  []time.Time `json:"exclude_dates,omitempty"`
	BlackoutDates []time.Time `json:"blackout_dates,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Discount) AppliesToRoom(roomID int64) bool {
	if d.ApplicableTo != ScopeSpecificRooms {
		return true
	}
	for _, id := range d.RoomIDs {
		if id == roomID {
			return true
		}
	}
	return false
}

func (d *Discount) AppliesToUser(userID int64) bool {
	if d.ApplicableTo != ScopeSpecificUsers {
		return true
	}
	for _, id := range d.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
