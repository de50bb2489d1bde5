package repository

import (
	"context"
	"time"

	"hoteladmin/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	Reference          string     `gorm:"column:reference;uniqueIndex"`
	RoomID             int64      `gorm:"column:room_id;index"`
	UserID             int64      `gorm:"column:user_id;index"`
	CheckIn            time.Time  `gorm:"column:check_in"`
	CheckOut           time.Time  `gorm:"column:check_out"`
	Status             string     `gorm:"column:status;index"`
	TotalPrice         float64    `gorm:"column:total_price"`
	DiscountID         *int64     `gorm:"column:discount_id"`
	DiscountAmount     float64    `gorm:"column:discount_amount"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CancellationReason string     `gorm:"column:cancellation_reason"`
}

func (bookingModel) TableName() string { return "bookings" }

// bookingNightModel is the derived per-night ledger. The unique index over
// (room_id, night) is what makes two concurrent overlapping creates
// impossible: the second insert violates it and its transaction rolls back.
type bookingNightModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;index"`
	RoomID    int64     `gorm:"column:room_id;uniqueIndex:idx_booking_nights_room_night"`
	Night     time.Time `gorm:"column:night;uniqueIndex:idx_booking_nights_room_night"`
}

func (bookingNightModel) TableName() string { return "booking_nights" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:                 m.ID,
		Reference:          m.Reference,
		RoomID:             m.RoomID,
		UserID:             m.UserID,
		CheckIn:            domain.DateOnly(m.CheckIn),
		CheckOut:           domain.DateOnly(m.CheckOut),
		Status:             domain.BookingStatus(m.Status),
		TotalPrice:         m.TotalPrice,
		DiscountID:         m.DiscountID,
		DiscountAmount:     m.DiscountAmount,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		CancelledAt:        m.CancelledAt,
		CancellationReason: m.CancellationReason,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:                 b.ID,
		Reference:          b.Reference,
		RoomID:             b.RoomID,
		UserID:             b.UserID,
		CheckIn:            domain.DateOnly(b.CheckIn),
		CheckOut:           domain.DateOnly(b.CheckOut),
		Status:             string(b.Status),
		TotalPrice:         b.TotalPrice,
		DiscountID:         b.DiscountID,
		DiscountAmount:     b.DiscountAmount,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
	}
}

// Create inserts the booking row plus one ledger row per night. Must run
// inside the orchestrator's transaction.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return r.insertNights(ctx, b)
}

func (r *BookingRepository) insertNights(ctx context.Context, b *domain.Booking) error {
	nights := domain.EachNight(b.CheckIn, b.CheckOut)
	rows := make([]bookingNightModel, 0, len(nights))
	for _, n := range nights {
		rows = append(rows, bookingNightModel{BookingID: b.ID, RoomID: b.RoomID, Night: n})
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *BookingRepository) deleteNights(ctx context.Context, bookingID int64) error {
	return r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&bookingNightModel{}).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ActiveRangesOverlapping returns the date ranges of active bookings on the
// room whose half-open [check_in, check_out) overlaps [from, to).
// excludeID, when non-zero, skips that booking so an edit does not collide
// with itself.
func (r *BookingRepository) ActiveRangesOverlapping(ctx context.Context, roomID int64, from, to time.Time, excludeID int64) ([]domain.BookedRange, error) {
	q := `
SELECT id AS booking_id, check_in, check_out
FROM bookings
WHERE room_id = ?
  AND status IN ('pending', 'confirmed')
  AND check_in < ?
  AND check_out > ?
  AND id <> ?
ORDER BY check_in
`
	var rows []domain.BookedRange
	tx := r.db.WithContext(ctx).
		Raw(q, roomID, domain.DateOnly(to), domain.DateOnly(from), excludeID).
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// UpdateStay rewrites a booking's room, dates, prices and its night ledger.
// Must run inside the orchestrator's transaction.
func (r *BookingRepository) UpdateStay(ctx context.Context, b *domain.Booking) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{ID: b.ID}).Updates(map[string]any{
		"room_id":         b.RoomID,
		"check_in":        domain.DateOnly(b.CheckIn),
		"check_out":       domain.DateOnly(b.CheckOut),
		"total_price":     b.TotalPrice,
		"discount_amount": b.DiscountAmount,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if err := r.deleteNights(ctx, b.ID); err != nil {
		return err
	}
	return r.insertNights(ctx, b)
}

// Cancel marks the booking cancelled and frees its nights.
func (r *BookingRepository) Cancel(ctx context.Context, bookingID int64, reason string, at time.Time) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{ID: bookingID}).Updates(map[string]any{
		"status":              string(domain.BookingCancelled),
		"cancellation_reason": reason,
		"cancelled_at":        at,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.deleteNights(ctx, bookingID)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{ID: bookingID}).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountUserDiscountUsage counts the user's non-cancelled bookings that
// redeemed the discount, for the per-user limit check.
func (r *BookingRepository) CountUserDiscountUsage(ctx context.Context, userID, discountID int64) (int, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("user_id = ? AND discount_id = ? AND status <> ?", userID, discountID, string(domain.BookingCancelled)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return int(cnt), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("check_in DESC").
		Limit(limit).Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
