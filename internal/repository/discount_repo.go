package repository

import (
	"context"
	"encoding/json"
	"time"

	"hoteladmin/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DiscountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

type discountModel struct {
	ID               int64          `gorm:"column:id;primaryKey"`
	Code             string         `gorm:"column:code;uniqueIndex"`
	Type             string         `gorm:"column:type"`
	Value            float64        `gorm:"column:value"`
	Status           string         `gorm:"column:status"`
	MaxDiscount      *float64       `gorm:"column:max_discount"`
	MinBookingAmount *float64       `gorm:"column:min_booking_amount"`
	ValidFrom        *time.Time     `gorm:"column:valid_from"`
	ValidTo          *time.Time     `gorm:"column:valid_to"`
	UsageLimit       *int           `gorm:"column:usage_limit"`
	UsedCount        int            `gorm:"column:used_count"`
	UserLimit        *int           `gorm:"column:user_limit"`
	ApplicableTo     string         `gorm:"column:applicable_to"`
	RoomIDs          datatypes.JSON `gorm:"column:room_ids"`
	UserIDs          datatypes.JSON `gorm:"column:user_ids"`
	ExcludeDates     datatypes.JSON `gorm:"column:exclude_dates"`
	BlackoutDates    datatypes.JSON `gorm:"column:blackout_dates"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
}

func (discountModel) TableName() string { return "discounts" }

const dateListLayout = "2006-01-02"

func encodeIDs(ids []int64) datatypes.JSON {
	if len(ids) == 0 {
		return datatypes.JSON("[]")
	}
	b, _ := json.Marshal(ids)
	return datatypes.JSON(b)
}

func decodeIDs(raw datatypes.JSON) []int64 {
	if len(raw) == 0 {
		return nil
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}

func encodeDates(dates []time.Time) datatypes.JSON {
	ss := make([]string, 0, len(dates))
	for _, d := range dates {
		ss = append(ss, domain.DateOnly(d).Format(dateListLayout))
	}
	b, _ := json.Marshal(ss)
	return datatypes.JSON(b)
}

func decodeDates(raw datatypes.JSON) []time.Time {
	if len(raw) == 0 {
		return nil
	}
	var ss []string
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil
	}
	out := make([]time.Time, 0, len(ss))
	for _, s := range ss {
		d, err := time.Parse(dateListLayout, s)
		if err != nil {
			continue
		}
		out = append(out, d.UTC())
	}
	return out
}

func toDomainDiscount(m discountModel) *domain.Discount {
	return &domain.Discount{
		ID:               m.ID,
		Code:             m.Code,
		Type:             domain.DiscountType(m.Type),
		Value:            m.Value,
		Status:           domain.DiscountStatus(m.Status),
		MaxDiscount:      m.MaxDiscount,
		MinBookingAmount: m.MinBookingAmount,
		ValidFrom:        m.ValidFrom,
		ValidTo:          m.ValidTo,
		UsageLimit:       m.UsageLimit,
		UsedCount:        m.UsedCount,
		UserLimit:        m.UserLimit,
		ApplicableTo:     domain.DiscountScope(m.ApplicableTo),
		RoomIDs:          decodeIDs(m.RoomIDs),
		UserIDs:          decodeIDs(m.UserIDs),
		ExcludeDates:     decodeDates(m.ExcludeDates),
		BlackoutDates:    decodeDates(m.BlackoutDates),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toDiscountModel(d *domain.Discount) discountModel {
	return discountModel{
		ID:               d.ID,
		Code:             d.Code,
		Type:             string(d.Type),
		Value:            d.Value,
		Status:           string(d.Status),
		MaxDiscount:      d.MaxDiscount,
		MinBookingAmount: d.MinBookingAmount,
		ValidFrom:        d.ValidFrom,
		ValidTo:          d.ValidTo,
		UsageLimit:       d.UsageLimit,
		UsedCount:        d.UsedCount,
		UserLimit:        d.UserLimit,
		ApplicableTo:     string(d.ApplicableTo),
		RoomIDs:          encodeIDs(d.RoomIDs),
		UserIDs:          encodeIDs(d.UserIDs),
		ExcludeDates:     encodeDates(d.ExcludeDates),
		BlackoutDates:    encodeDates(d.BlackoutDates),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (r *DiscountRepository) FindByCode(ctx context.Context, code string) (*domain.Discount, error) {
	var m discountModel
	tx := r.db.WithContext(ctx).Where("code = ?", code).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDiscount(m), nil
}

func (r *DiscountRepository) GetByID(ctx context.Context, id int64) (*domain.Discount, error) {
	var m discountModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDiscount(m), nil
}

func (r *DiscountRepository) Create(ctx context.Context, d *domain.Discount) error {
	m := toDiscountModel(d)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainDiscount(m)
	return nil
}

func (r *DiscountRepository) List(ctx context.Context) ([]domain.Discount, error) {
	var ms []discountModel
	if tx := r.db.WithContext(ctx).Order("id").Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Discount, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainDiscount(m))
	}
	return out, nil
}

// ConsumeUsage bumps used_count by one, but only while the usage limit still
// has headroom. The guard lives in the UPDATE itself so two concurrent
// redemptions cannot both pass a stale read; the loser sees zero rows
// affected and reports false.
func (r *DiscountRepository) ConsumeUsage(ctx context.Context, discountID int64) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE discounts
SET used_count = used_count + 1
WHERE id = ?
  AND (usage_limit IS NULL OR used_count < usage_limit)
`, discountID)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
