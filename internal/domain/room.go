package domain

import "time"

type Room struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	BasePrice   float64 `json:"base_price" validate:"required,gte=0"`
	// WeekendPrice, when set, replaces BasePrice on Saturday and Sunday nights.
	WeekendPrice *float64 `json:"weekend_price,omitempty"`
	// SeasonalPrice is stored but not yet part of the nightly price chain.
	SeasonalPrice *float64  `json:"seasonal_price,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PriceMode string

const (
	PriceModeFixed    PriceMode = "fixed"
	PriceModeIncrease PriceMode = "increase"
	PriceModeDecrease PriceMode = "decrease"
)

// SpecialPrice is an admin-set per-night override for one room-date pair.
// At most one override exists per (RoomID, Date).
type SpecialPrice struct {
	ID     int64     `json:"id"`
	RoomID int64     `json:"room_id" validate:"required"`
	Date   time.Time `json:"date" validate:"required"`
	Amount float64   `json:"amount" validate:"gte=0"`
	Mode   PriceMode `json:"mode" validate:"required,oneof=fixed increase decrease"`
}

// BlockedDate makes a room unavailable for one night regardless of bookings.
type BlockedDate struct {
	ID     int64     `json:"id"`
	RoomID int64     `json:"room_id" validate:"required"`
	Date   time.Time `json:"date" validate:"required"`
	Reason string    `json:"reason,omitempty"`
}
