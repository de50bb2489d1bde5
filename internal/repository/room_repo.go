package repository

import (
	"context"
	"errors"
	"time"

	"hoteladmin/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name"`
	Description   string    `gorm:"column:description"`
	BasePrice     float64   `gorm:"column:base_price"`
	WeekendPrice  *float64  `gorm:"column:weekend_price"`
	SeasonalPrice *float64  `gorm:"column:seasonal_price"`
	IsActive      bool      `gorm:"column:is_active;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		BasePrice:     m.BasePrice,
		WeekendPrice:  m.WeekendPrice,
		SeasonalPrice: m.SeasonalPrice,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		BasePrice:     r.BasePrice,
		WeekendPrice:  r.WeekendPrice,
		SeasonalPrice: r.SeasonalPrice,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) List(ctx context.Context, onlyActive bool) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Model(&roomModel{})
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	var ms []roomModel
	if tx := q.Order("id").Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Model(&roomModel{ID: m.ID}).Updates(map[string]any{
		"name":           m.Name,
		"description":    m.Description,
		"base_price":     m.BasePrice,
		"weekend_price":  m.WeekendPrice,
		"seasonal_price": m.SeasonalPrice,
		"is_active":      m.IsActive,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
