package repository

import (
	"context"
	"time"

	"hoteladmin/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CalendarRepository holds the per-room calendar inputs the pricing and
// availability checks read: special price overrides and blocked dates.
type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

type specialPriceModel struct {
	ID     int64     `gorm:"column:id;primaryKey"`
	RoomID int64     `gorm:"column:room_id;uniqueIndex:idx_special_prices_room_date"`
	Date   time.Time `gorm:"column:date;uniqueIndex:idx_special_prices_room_date"`
	Amount float64   `gorm:"column:amount"`
	Mode   string    `gorm:"column:mode"`
}

func (specialPriceModel) TableName() string { return "special_prices" }

type blockedDateModel struct {
	ID     int64     `gorm:"column:id;primaryKey"`
	RoomID int64     `gorm:"column:room_id;uniqueIndex:idx_blocked_dates_room_date"`
	Date   time.Time `gorm:"column:date;uniqueIndex:idx_blocked_dates_room_date"`
	Reason string    `gorm:"column:reason"`
}

func (blockedDateModel) TableName() string { return "blocked_dates" }

func toDomainSpecialPrice(m specialPriceModel) domain.SpecialPrice {
	return domain.SpecialPrice{
		ID:     m.ID,
		RoomID: m.RoomID,
		Date:   domain.DateOnly(m.Date),
		Amount: m.Amount,
		Mode:   domain.PriceMode(m.Mode),
	}
}

// SpecialPricesIn returns the overrides for nights in [from, to), keyed by day.
func (r *CalendarRepository) SpecialPricesIn(ctx context.Context, roomID int64, from, to time.Time) (map[time.Time]domain.SpecialPrice, error) {
	var ms []specialPriceModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND date >= ? AND date < ?", roomID, domain.DateOnly(from), domain.DateOnly(to)).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[time.Time]domain.SpecialPrice, len(ms))
	for _, m := range ms {
		sp := toDomainSpecialPrice(m)
		out[sp.Date] = sp
	}
	return out, nil
}

// UpsertSpecialPrice creates or replaces the override for (room, date).
func (r *CalendarRepository) UpsertSpecialPrice(ctx context.Context, sp *domain.SpecialPrice) error {
	m := specialPriceModel{
		RoomID: sp.RoomID,
		Date:   domain.DateOnly(sp.Date),
		Amount: sp.Amount,
		Mode:   string(sp.Mode),
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "mode"}),
	}).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	sp.ID = m.ID
	return nil
}

func (r *CalendarRepository) DeleteSpecialPrice(ctx context.Context, roomID int64, date time.Time) error {
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND date = ?", roomID, domain.DateOnly(date)).
		Delete(&specialPriceModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BlockedDatesIn returns the blocked nights in [from, to).
func (r *CalendarRepository) BlockedDatesIn(ctx context.Context, roomID int64, from, to time.Time) ([]domain.BlockedDate, error) {
	var ms []blockedDateModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND date >= ? AND date < ?", roomID, domain.DateOnly(from), domain.DateOnly(to)).
		Order("date").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.BlockedDate, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.BlockedDate{
			ID:     m.ID,
			RoomID: m.RoomID,
			Date:   domain.DateOnly(m.Date),
			Reason: m.Reason,
		})
	}
	return out, nil
}

func (r *CalendarRepository) BlockDate(ctx context.Context, bd *domain.BlockedDate) error {
	m := blockedDateModel{
		RoomID: bd.RoomID,
		Date:   domain.DateOnly(bd.Date),
		Reason: bd.Reason,
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"reason"}),
	}).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	bd.ID = m.ID
	return nil
}

func (r *CalendarRepository) UnblockDate(ctx context.Context, roomID int64, date time.Time) error {
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND date = ?", roomID, domain.DateOnly(date)).
		Delete(&blockedDateModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
