package catalog

import "hoteladmin/internal/domain"

type CreateRoomRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	BasePrice     float64  `json:"base_price" binding:"required,gte=0"`
	WeekendPrice  *float64 `json:"weekend_price"`
	SeasonalPrice *float64 `json:"seasonal_price"`
}

type UpdateRoomRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	BasePrice     *float64 `json:"base_price"`
	WeekendPrice  *float64 `json:"weekend_price"`
	SeasonalPrice *float64 `json:"seasonal_price"`
	IsActive      *bool    `json:"is_active"`
}

type SetSpecialPriceRequest struct {
	Date   string  `json:"date" binding:"required"`
	Amount float64 `json:"amount" binding:"gte=0"`
	Mode   string  `json:"mode" binding:"required,oneof=fixed increase decrease"`
}

type BlockDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// RoomCalendar is the admin view of a room's pricing and blocking inputs for
// a date window.
type RoomCalendar struct {
	RoomID        int64                 `json:"room_id"`
	SpecialPrices []domain.SpecialPrice `json:"special_prices"`
	BlockedDates  []domain.BlockedDate  `json:"blocked_dates"`
}
