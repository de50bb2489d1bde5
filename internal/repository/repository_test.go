package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hoteladmin/internal/database"
	"hoteladmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStores(t *testing.T) *Stores {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return NewStores(db)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(ref string, roomID, userID int64, in, out time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		Reference:  ref,
		RoomID:     roomID,
		UserID:     userID,
		CheckIn:    in,
		CheckOut:   out,
		Status:     status,
		TotalPrice: 200,
	}
}

func TestBookingRepository_NightLedgerRejectsOverlap(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	first := stay("bk-1", 1, 1, day(2026, 3, 10), day(2026, 3, 12), domain.BookingConfirmed)
	require.NoError(t, s.WithTx(ctx, func(tx *Stores) error {
		return tx.Bookings.Create(ctx, first)
	}))

	// shares the night of Mar 11, the unique index fires
	second := stay("bk-2", 1, 2, day(2026, 3, 11), day(2026, 3, 13), domain.BookingPending)
	err := s.WithTx(ctx, func(tx *Stores) error {
		return tx.Bookings.Create(ctx, second)
	})
	assert.Error(t, err)

	// the losing transaction left no booking row behind
	var cnt int64
	require.NoError(t, s.db.Model(&bookingModel{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)

	// back-to-back stay shares no night and goes through
	third := stay("bk-3", 1, 2, day(2026, 3, 12), day(2026, 3, 14), domain.BookingPending)
	require.NoError(t, s.WithTx(ctx, func(tx *Stores) error {
		return tx.Bookings.Create(ctx, third)
	}))
}

func TestBookingRepository_CancelFreesNights(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	first := stay("bk-1", 1, 1, day(2026, 3, 10), day(2026, 3, 12), domain.BookingConfirmed)
	require.NoError(t, s.WithTx(ctx, func(tx *Stores) error {
		return tx.Bookings.Create(ctx, first)
	}))

	require.NoError(t, s.Bookings.Cancel(ctx, first.ID, "guest request", day(2026, 3, 1)))

	// cancelled booking no longer blocks the query side
	ranges, err := s.Bookings.ActiveRangesOverlapping(ctx, 1, day(2026, 3, 10), day(2026, 3, 12), 0)
	require.NoError(t, err)
	assert.Empty(t, ranges)

	// and its nights are free for a new insert
	second := stay("bk-2", 1, 2, day(2026, 3, 10), day(2026, 3, 12), domain.BookingPending)
	require.NoError(t, s.WithTx(ctx, func(tx *Stores) error {
		return tx.Bookings.Create(ctx, second)
	}))
}

func TestBookingRepository_ActiveRangesOverlapping(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	booked := stay("bk-1", 1, 1, day(2026, 3, 10), day(2026, 3, 12), domain.BookingConfirmed)
	require.NoError(t, s.WithTx(ctx, func(tx *Stores) error {
		return tx.Bookings.Create(ctx, booked)
	}))
	cancelled := stay("bk-2", 1, 2, day(2026, 3, 20), day(2026, 3, 22), domain.BookingCancelled)
	require.NoError(t, s.db.Create(&bookingModel{
		Reference: cancelled.Reference,
		RoomID:    cancelled.RoomID,
		UserID:    cancelled.UserID,
		CheckIn:   cancelled.CheckIn,
		CheckOut:  cancelled.CheckOut,
		Status:    string(cancelled.Status),
	}).Error)

	// one shared night
	ranges, err := s.Bookings.ActiveRangesOverlapping(ctx, 1, day(2026, 3, 11), day(2026, 3, 13), 0)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, booked.ID, ranges[0].BookingID)

	// half-open: a stay starting on the checkout night does not overlap
	ranges, err = s.Bookings.ActiveRangesOverlapping(ctx, 1, day(2026, 3, 12), day(2026, 3, 14), 0)
	require.NoError(t, err)
	assert.Empty(t, ranges)

	// excluding the booking itself hides it from an edit's re-check
	ranges, err = s.Bookings.ActiveRangesOverlapping(ctx, 1, day(2026, 3, 10), day(2026, 3, 12), booked.ID)
	require.NoError(t, err)
	assert.Empty(t, ranges)

	// cancelled bookings never count
	ranges, err = s.Bookings.ActiveRangesOverlapping(ctx, 1, day(2026, 3, 20), day(2026, 3, 22), 0)
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestDiscountRepository_ConsumeUsageHonorsLimit(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	limit := 1
	d := &domain.Discount{
		Code:         "ONCE",
		Type:         domain.DiscountPercentage,
		Value:        10,
		Status:       domain.DiscountActive,
		ApplicableTo: domain.ScopeAllRooms,
		UsageLimit:   &limit,
	}
	require.NoError(t, s.Discounts.Create(ctx, d))

	ok, err := s.Discounts.ConsumeUsage(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// the guard lives in the UPDATE, the second consume loses
	ok, err = s.Discounts.ConsumeUsage(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.Discounts.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsedCount)
}

func TestDiscountRepository_ConsumeUsageUnlimited(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	d := &domain.Discount{
		Code:         "OPEN",
		Type:         domain.DiscountPercentage,
		Value:        10,
		Status:       domain.DiscountActive,
		ApplicableTo: domain.ScopeAllRooms,
	}
	require.NoError(t, s.Discounts.Create(ctx, d))

	for i := 0; i < 3; i++ {
		ok, err := s.Discounts.ConsumeUsage(ctx, d.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	got, err := s.Discounts.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.UsedCount)
}

func TestDiscountRepository_ListsRoundTrip(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	d := &domain.Discount{
		Code:          "ROOMS",
		Type:          domain.DiscountFixedAmount,
		Value:         25,
		Status:        domain.DiscountActive,
		ApplicableTo:  domain.ScopeSpecificRooms,
		RoomIDs:       []int64{4, 7},
		ExcludeDates:  []time.Time{day(2026, 7, 4)},
		BlackoutDates: []time.Time{day(2026, 12, 31)},
	}
	require.NoError(t, s.Discounts.Create(ctx, d))

	got, err := s.Discounts.FindByCode(ctx, "ROOMS")
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 7}, got.RoomIDs)
	assert.Equal(t, []time.Time{day(2026, 7, 4)}, got.ExcludeDates)
	assert.Equal(t, []time.Time{day(2026, 12, 31)}, got.BlackoutDates)
}

func TestBookingRepository_CountUserDiscountUsage(t *testing.T) {
	s := openTestStores(t)
	ctx := context.Background()

	discountID := int64(5)
	active := stay("bk-1", 1, 9, day(2026, 3, 10), day(2026, 3, 12), domain.BookingConfirmed)
	active.DiscountID = &discountID
	require.NoError(t, s.WithTx(ctx, func(tx *Stores) error {
		return tx.Bookings.Create(ctx, active)
	}))
	other := stay("bk-2", 2, 9, day(2026, 3, 10), day(2026, 3, 12), domain.BookingConfirmed)
	other.DiscountID = &discountID
	require.NoError(t, s.WithTx(ctx, func(tx *Stores) error {
		return tx.Bookings.Create(ctx, other)
	}))
	require.NoError(t, s.Bookings.Cancel(ctx, other.ID, "changed plans", day(2026, 3, 1)))

	// cancelled redemptions do not count toward the per-user limit
	cnt, err := s.Bookings.CountUserDiscountUsage(ctx, 9, discountID)
	require.NoError(t, err)
	assert.Equal(t, 1, cnt)
}
