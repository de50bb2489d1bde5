package catalog

import (
	"context"
	"testing"
	"time"

	"hoteladmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomStore) List(ctx context.Context, onlyActive bool) ([]domain.Room, error) {
	args := m.Called(ctx, onlyActive)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomStore) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	if args.Error(0) == nil {
		room.ID = 10
	}
	return args.Error(0)
}

func (m *MockRoomStore) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

type MockCalendarStore struct {
	mock.Mock
}

func (m *MockCalendarStore) SpecialPricesIn(ctx context.Context, roomID int64, from, to time.Time) (map[time.Time]domain.SpecialPrice, error) {
	args := m.Called(ctx, roomID, from, to)
	return args.Get(0).(map[time.Time]domain.SpecialPrice), args.Error(1)
}

func (m *MockCalendarStore) UpsertSpecialPrice(ctx context.Context, sp *domain.SpecialPrice) error {
	args := m.Called(ctx, sp)
	return args.Error(0)
}

func (m *MockCalendarStore) DeleteSpecialPrice(ctx context.Context, roomID int64, date time.Time) error {
	args := m.Called(ctx, roomID, date)
	return args.Error(0)
}

func (m *MockCalendarStore) BlockedDatesIn(ctx context.Context, roomID int64, from, to time.Time) ([]domain.BlockedDate, error) {
	args := m.Called(ctx, roomID, from, to)
	return args.Get(0).([]domain.BlockedDate), args.Error(1)
}

func (m *MockCalendarStore) BlockDate(ctx context.Context, bd *domain.BlockedDate) error {
	args := m.Called(ctx, bd)
	return args.Error(0)
}

func (m *MockCalendarStore) UnblockDate(ctx context.Context, roomID int64, date time.Time) error {
	args := m.Called(ctx, roomID, date)
	return args.Error(0)
}

func newTestService() (*Service, *MockRoomStore, *MockCalendarStore) {
	rooms := new(MockRoomStore)
	calendar := new(MockCalendarStore)
	return NewService(rooms, calendar), rooms, calendar
}

func TestService_CreateRoom(t *testing.T) {
	s, rooms, _ := newTestService()

	rooms.On("Create", mock.Anything, mock.Anything).Return(nil)

	room, err := s.CreateRoom(context.Background(), CreateRoomRequest{
		Name:      "Standard 101",
		BasePrice: 100,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), room.ID)
	assert.True(t, room.IsActive)
}

func TestService_CreateRoom_MissingName(t *testing.T) {
	s, rooms, _ := newTestService()

	_, err := s.CreateRoom(context.Background(), CreateRoomRequest{BasePrice: 100})

	assert.ErrorIs(t, err, ErrValidation)
	rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_UpdateRoom_PartialPatch(t *testing.T) {
	s, rooms, _ := newTestService()

	rooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{
		ID:        10,
		Name:      "Standard 101",
		BasePrice: 100,
		IsActive:  true,
	}, nil)
	rooms.On("Update", mock.Anything, mock.Anything).Return(nil)

	newPrice := 120.0
	inactive := false
	room, err := s.UpdateRoom(context.Background(), 10, UpdateRoomRequest{
		BasePrice: &newPrice,
		IsActive:  &inactive,
	})

	assert.NoError(t, err)
	assert.Equal(t, 120.0, room.BasePrice)
	assert.False(t, room.IsActive)
	assert.Equal(t, "Standard 101", room.Name)
}

func TestService_UpdateRoom_NotFound(t *testing.T) {
	s, rooms, _ := newTestService()

	rooms.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	name := "Ghost"
	_, err := s.UpdateRoom(context.Background(), 99, UpdateRoomRequest{Name: &name})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_SetSpecialPrice(t *testing.T) {
	s, rooms, calendar := newTestService()

	rooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{ID: 10, Name: "Standard", BasePrice: 100, IsActive: true}, nil)
	calendar.On("UpsertSpecialPrice", mock.Anything, mock.Anything).Return(nil)

	sp, err := s.SetSpecialPrice(context.Background(), 10, SetSpecialPriceRequest{
		Date:   "2026-07-04",
		Amount: 80,
		Mode:   "fixed",
	})

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC), sp.Date)
	assert.Equal(t, domain.PriceModeFixed, sp.Mode)
}

func TestService_SetSpecialPrice_BadDate(t *testing.T) {
	s, _, calendar := newTestService()

	_, err := s.SetSpecialPrice(context.Background(), 10, SetSpecialPriceRequest{
		Date:   "04/07/2026",
		Amount: 80,
		Mode:   "fixed",
	})

	assert.ErrorIs(t, err, ErrValidation)
	calendar.AssertNotCalled(t, "UpsertSpecialPrice", mock.Anything, mock.Anything)
}

func TestService_BlockDate_UnknownRoom(t *testing.T) {
	s, rooms, calendar := newTestService()

	rooms.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := s.BlockDate(context.Background(), 99, BlockDateRequest{
		Date:   "2026-07-04",
		Reason: "renovation",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	calendar.AssertNotCalled(t, "BlockDate", mock.Anything, mock.Anything)
}

func TestService_RoomCalendar_SortedOverrides(t *testing.T) {
	s, rooms, calendar := newTestService()

	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC)

	rooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{ID: 10, Name: "Standard", BasePrice: 100, IsActive: true}, nil)
	calendar.On("SpecialPricesIn", mock.Anything, int64(10), from, to).Return(map[time.Time]domain.SpecialPrice{
		d2: {RoomID: 10, Date: d2, Mode: domain.PriceModeFixed, Amount: 90},
		d1: {RoomID: 10, Date: d1, Mode: domain.PriceModeIncrease, Amount: 20},
	}, nil)
	calendar.On("BlockedDatesIn", mock.Anything, int64(10), from, to).Return([]domain.BlockedDate{
		{RoomID: 10, Date: d1, Reason: "private event"},
	}, nil)

	cal, err := s.RoomCalendar(context.Background(), 10, from, to)

	assert.NoError(t, err)
	assert.Len(t, cal.SpecialPrices, 2)
	assert.Equal(t, d1, cal.SpecialPrices[0].Date)
	assert.Equal(t, d2, cal.SpecialPrices[1].Date)
	assert.Len(t, cal.BlockedDates, 1)
}
