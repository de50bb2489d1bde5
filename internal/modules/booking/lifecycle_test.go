package booking

import (
	"context"
	"path/filepath"
	"testing"

	"hoteladmin/internal/database"
	"hoteladmin/internal/domain"
	"hoteladmin/internal/modules/discount"
	"hoteladmin/internal/pkg/clock"
	"hoteladmin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveEngine wires the full stack over a throwaway sqlite file, the same path
// cmd/api takes minus the HTTP layer.
func liveEngine(t *testing.T) (*Service, *repository.Stores) {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	stores := repository.NewStores(db)
	clk := clock.Fixed(date(2026, 1, 1))
	engine := discount.NewService(stores.Discounts, stores.Bookings, clk)
	return NewService(NewGormTx(stores), ReposFrom(stores), engine, clk), stores
}

func TestBookingLifecycle_OverlapAndCancel(t *testing.T) {
	svc, stores := liveEngine(t)
	ctx := context.Background()

	room := &domain.Room{Name: "Standard 101", BasePrice: 100, IsActive: true}
	require.NoError(t, stores.Rooms.Create(ctx, room))

	first, err := svc.CreateBooking(ctx, CreateBookingInput{
		RoomID:   room.ID,
		UserID:   1,
		CheckIn:  date(2026, 3, 2),
		CheckOut: date(2026, 3, 4),
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, first.TotalPrice)
	assert.Equal(t, domain.BookingPending, first.Status)

	// a stay sharing the night of Mar 3 is turned away
	_, err = svc.CreateBooking(ctx, CreateBookingInput{
		RoomID:   room.ID,
		UserID:   2,
		CheckIn:  date(2026, 3, 3),
		CheckOut: date(2026, 3, 5),
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	quote, err := svc.CheckAvailability(ctx, room.ID, date(2026, 3, 3), date(2026, 3, 5))
	require.NoError(t, err)
	assert.False(t, quote.Available)

	cancelled, err := svc.CancelBooking(ctx, first.ID, "plans changed")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)

	// cancellation frees the nights for the same range
	quote, err = svc.CheckAvailability(ctx, room.ID, date(2026, 3, 3), date(2026, 3, 5))
	require.NoError(t, err)
	assert.True(t, quote.Available)

	second, err := svc.CreateBooking(ctx, CreateBookingInput{
		RoomID:   room.ID,
		UserID:   2,
		CheckIn:  date(2026, 3, 3),
		CheckOut: date(2026, 3, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, second.TotalPrice)
}

func TestBookingLifecycle_UsageLimitedDiscount(t *testing.T) {
	svc, stores := liveEngine(t)
	ctx := context.Background()

	room := &domain.Room{Name: "Deluxe 201", BasePrice: 100, IsActive: true}
	require.NoError(t, stores.Rooms.Create(ctx, room))

	limit := 1
	require.NoError(t, stores.Discounts.Create(ctx, &domain.Discount{
		Code:         "ONCE10",
		Type:         domain.DiscountPercentage,
		Value:        10,
		Status:       domain.DiscountActive,
		ApplicableTo: domain.ScopeAllRooms,
		UsageLimit:   &limit,
	}))

	first, err := svc.CreateBooking(ctx, CreateBookingInput{
		RoomID:       room.ID,
		UserID:       1,
		CheckIn:      date(2026, 3, 2),
		CheckOut:     date(2026, 3, 4),
		DiscountCode: "ONCE10",
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, first.DiscountAmount)
	assert.Equal(t, 180.0, first.TotalPrice)

	d, err := stores.Discounts.FindByCode(ctx, "ONCE10")
	require.NoError(t, err)
	assert.Equal(t, 1, d.UsedCount)

	// the slot is gone, a second redemption on fresh dates is rejected
	_, err = svc.CreateBooking(ctx, CreateBookingInput{
		RoomID:       room.ID,
		UserID:       2,
		CheckIn:      date(2026, 3, 10),
		CheckOut:     date(2026, 3, 12),
		DiscountCode: "ONCE10",
	})
	assert.ErrorIs(t, err, ErrDiscountInvalid)

	d, err = stores.Discounts.FindByCode(ctx, "ONCE10")
	require.NoError(t, err)
	assert.Equal(t, 1, d.UsedCount)
}

func TestBookingLifecycle_UpdateDatesMovesLedger(t *testing.T) {
	svc, stores := liveEngine(t)
	ctx := context.Background()

	room := &domain.Room{Name: "Standard 101", BasePrice: 100, IsActive: true}
	require.NoError(t, stores.Rooms.Create(ctx, room))

	first, err := svc.CreateBooking(ctx, CreateBookingInput{
		RoomID:   room.ID,
		UserID:   1,
		CheckIn:  date(2026, 3, 2),
		CheckOut: date(2026, 3, 4),
	})
	require.NoError(t, err)

	newIn := date(2026, 3, 10)
	newOut := date(2026, 3, 13)
	moved, err := svc.UpdateBookingDates(ctx, UpdateDatesInput{
		BookingID: first.ID,
		CheckIn:   &newIn,
		CheckOut:  &newOut,
	})
	require.NoError(t, err)
	assert.Equal(t, 300.0, moved.TotalPrice)

	// the old nights are released, the new ones are held
	quote, err := svc.CheckAvailability(ctx, room.ID, date(2026, 3, 2), date(2026, 3, 4))
	require.NoError(t, err)
	assert.True(t, quote.Available)

	quote, err = svc.CheckAvailability(ctx, room.ID, newIn, newOut)
	require.NoError(t, err)
	assert.False(t, quote.Available)
}
