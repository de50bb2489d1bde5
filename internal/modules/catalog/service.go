package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"hoteladmin/internal/domain"
	"hoteladmin/internal/pkg/validator"
	"hoteladmin/internal/repository"
)

var (
	ErrValidation = errors.New("catalog validation error")
	ErrNotFound   = errors.New("catalog entry not found")
)

type RoomStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, onlyActive bool) ([]domain.Room, error)
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
}

type CalendarStore interface {
	SpecialPricesIn(ctx context.Context, roomID int64, from, to time.Time) (map[time.Time]domain.SpecialPrice, error)
	UpsertSpecialPrice(ctx context.Context, sp *domain.SpecialPrice) error
	DeleteSpecialPrice(ctx context.Context, roomID int64, date time.Time) error
	BlockedDatesIn(ctx context.Context, roomID int64, from, to time.Time) ([]domain.BlockedDate, error)
	BlockDate(ctx context.Context, bd *domain.BlockedDate) error
	UnblockDate(ctx context.Context, roomID int64, date time.Time) error
}

// Service is the thin admin surface over the calendar inputs the booking
// engine reads: rooms, special price overrides, blocked dates.
type Service struct {
	rooms    RoomStore
	calendar CalendarStore
}

func NewService(rooms RoomStore, calendar CalendarStore) *Service {
	return &Service{rooms: rooms, calendar: calendar}
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	room := &domain.Room{
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		WeekendPrice:  req.WeekendPrice,
		SeasonalPrice: req.SeasonalPrice,
		IsActive:      true,
	}
	if errs := validator.Validate(room); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.BasePrice != nil {
		room.BasePrice = *req.BasePrice
	}
	if req.WeekendPrice != nil {
		room.WeekendPrice = req.WeekendPrice
	}
	if req.SeasonalPrice != nil {
		room.SeasonalPrice = req.SeasonalPrice
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if errs := validator.Validate(room); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, onlyActive bool) ([]domain.Room, error) {
	return s.rooms.List(ctx, onlyActive)
}

func (s *Service) SetSpecialPrice(ctx context.Context, roomID int64, req SetSpecialPriceRequest) (*domain.SpecialPrice, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrValidation, req.Date)
	}
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	sp := &domain.SpecialPrice{
		RoomID: roomID,
		Date:   domain.DateOnly(date),
		Amount: req.Amount,
		Mode:   domain.PriceMode(req.Mode),
	}
	if errs := validator.Validate(sp); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	if err := s.calendar.UpsertSpecialPrice(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *Service) RemoveSpecialPrice(ctx context.Context, roomID int64, date time.Time) error {
	err := s.calendar.DeleteSpecialPrice(ctx, roomID, date)
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *Service) BlockDate(ctx context.Context, roomID int64, req BlockDateRequest) (*domain.BlockedDate, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrValidation, req.Date)
	}
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	bd := &domain.BlockedDate{
		RoomID: roomID,
		Date:   domain.DateOnly(date),
		Reason: req.Reason,
	}
	if err := s.calendar.BlockDate(ctx, bd); err != nil {
		return nil, err
	}
	return bd, nil
}

func (s *Service) UnblockDate(ctx context.Context, roomID int64, date time.Time) error {
	err := s.calendar.UnblockDate(ctx, roomID, date)
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *Service) RoomCalendar(ctx context.Context, roomID int64, from, to time.Time) (*RoomCalendar, error) {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	overrides, err := s.calendar.SpecialPricesIn(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}
	blocked, err := s.calendar.BlockedDatesIn(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	sps := make([]domain.SpecialPrice, 0, len(overrides))
	for _, sp := range overrides {
		sps = append(sps, sp)
	}
	sort.Slice(sps, func(i, j int) bool { return sps[i].Date.Before(sps[j].Date) })

	return &RoomCalendar{RoomID: roomID, SpecialPrices: sps, BlockedDates: blocked}, nil
}
