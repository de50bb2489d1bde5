package booking

import (
	"context"
	"time"

	"hoteladmin/internal/domain"
	"hoteladmin/internal/modules/discount"
)

// BookingRepository defines the booking store operations the orchestrator needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ActiveRangesOverlapping(ctx context.Context, roomID int64, from, to time.Time, excludeID int64) ([]domain.BookedRange, error)
	UpdateStay(ctx context.Context, b *domain.Booking) error
	Cancel(ctx context.Context, bookingID int64, reason string, at time.Time) error
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// CalendarRepository is the read side of the room calendar: price overrides
// and blocked dates for a range.
type CalendarRepository interface {
	SpecialPricesIn(ctx context.Context, roomID int64, from, to time.Time) (map[time.Time]domain.SpecialPrice, error)
	BlockedDatesIn(ctx context.Context, roomID int64, from, to time.Time) ([]domain.BlockedDate, error)
}

type DiscountStore interface {
	FindByCode(ctx context.Context, code string) (*domain.Discount, error)
	GetByID(ctx context.Context, id int64) (*domain.Discount, error)
	ConsumeUsage(ctx context.Context, discountID int64) (bool, error)
}

// DiscountEngine is the eligibility/amount side of the discount module.
type DiscountEngine interface {
	Validate(ctx context.Context, d *domain.Discount, bc discount.BookingContext) (discount.Result, error)
	ComputeAmount(d *domain.Discount, bookingAmount float64, checkIn, checkOut time.Time) float64
}

// Repos bundles the stores a single orchestrator step works against, either
// the shared connection or one transaction.
type Repos struct {
	Bookings  BookingRepository
	Rooms     RoomRepository
	Calendar  CalendarRepository
	Discounts DiscountStore
}

// TxRunner executes fn inside one transaction; fn returning an error rolls
// the whole sequence back.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx Repos) error) error
}
