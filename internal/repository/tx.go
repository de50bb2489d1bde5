package repository

import (
	"context"

	"gorm.io/gorm"
)

// Stores bundles the repositories so the booking orchestrator can run its
// whole create/update sequence against one transaction.
type Stores struct {
	db *gorm.DB

	Rooms     *RoomRepository
	Calendar  *CalendarRepository
	Bookings  *BookingRepository
	Discounts *DiscountRepository
}

func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		db:        db,
		Rooms:     NewRoomRepository(db),
		Calendar:  NewCalendarRepository(db),
		Bookings:  NewBookingRepository(db),
		Discounts: NewDiscountRepository(db),
	}
}

// WithTx runs fn with a Stores bound to a single transaction. fn returning an
// error rolls everything back.
func (s *Stores) WithTx(ctx context.Context, fn func(tx *Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		return fn(NewStores(txdb))
	})
}
