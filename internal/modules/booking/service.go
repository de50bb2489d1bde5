package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"hoteladmin/internal/domain"
	"hoteladmin/internal/modules/discount"
	"hoteladmin/internal/pkg/clock"
	"hoteladmin/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Service orchestrates availability, pricing and discount checks into atomic
// booking writes. Every create/update runs its full sequence inside one
// transaction and is retried once when it loses a concurrency race.
type Service struct {
	tx        TxRunner
	repos     Repos
	discounts DiscountEngine
	clock     clock.Clock
}

func NewService(tx TxRunner, repos Repos, discounts DiscountEngine, clk clock.Clock) *Service {
	return &Service{tx: tx, repos: repos, discounts: discounts, clock: clk}
}

func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	checkIn := domain.DateOnly(in.CheckIn)
	checkOut := domain.DateOnly(in.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	var created *domain.Booking
	err := s.runWithRetry(ctx, func(tx Repos) error {
		room, err := tx.Rooms.GetByID(ctx, in.RoomID)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("room %d: %w", in.RoomID, ErrNotFound)
			}
			return err
		}
		if !room.IsActive {
			return ErrRoomUnavailable
		}

		ok, err := isAvailable(ctx, tx, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRoomUnavailable
		}

		total, err := stayPrice(ctx, tx, room, checkIn, checkOut)
		if err != nil {
			return err
		}

		var disc *domain.Discount
		var discountAmount float64
		if in.DiscountCode != "" {
			disc, err = tx.Discounts.FindByCode(ctx, in.DiscountCode)
			if err != nil {
				if repository.IsNotFound(err) {
					return fmt.Errorf("discount %q: %w", in.DiscountCode, ErrNotFound)
				}
				return err
			}

			res, err := s.discounts.Validate(ctx, disc, discount.BookingContext{
				RoomID:        room.ID,
				UserID:        &in.UserID,
				BookingAmount: total,
				CheckIn:       &checkIn,
				CheckOut:      &checkOut,
			})
			if err != nil {
				return err
			}
			if !res.Valid {
				return fmt.Errorf("%w: %s", ErrDiscountInvalid, res.Reason)
			}
			discountAmount = s.discounts.ComputeAmount(disc, total, checkIn, checkOut)
		}

		b := &domain.Booking{
			Reference:      uuid.NewString(),
			RoomID:         room.ID,
			UserID:         in.UserID,
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			Status:         domain.BookingPending,
			TotalPrice:     round2(math.Max(0, total-discountAmount)),
			DiscountAmount: discountAmount,
		}
		if disc != nil {
			b.DiscountID = &disc.ID
		}

		if err := tx.Bookings.Create(ctx, b); err != nil {
			return err
		}

		if disc != nil {
			// increment-and-check: the guard runs in the UPDATE itself, so a
			// concurrent redemption past the limit rolls this booking back
			consumed, err := tx.Discounts.ConsumeUsage(ctx, disc.ID)
			if err != nil {
				return err
			}
			if !consumed {
				return fmt.Errorf("%w: %s", ErrDiscountInvalid, discount.ReasonUsageLimitExceeded)
			}
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateBookingDates moves an active booking to a new room and/or date range.
// The availability check excludes the booking itself, the stay is re-priced,
// and an already-attached discount has its amount recomputed against the new
// total without touching the usage counter.
func (s *Service) UpdateBookingDates(ctx context.Context, in UpdateDatesInput) (*domain.Booking, error) {
	var updated *domain.Booking
	err := s.runWithRetry(ctx, func(tx Repos) error {
		b, err := tx.Bookings.GetByID(ctx, in.BookingID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if !b.Status.IsActive() {
			return ErrInvalidStatusTransition
		}

		roomID := b.RoomID
		if in.RoomID != nil {
			roomID = *in.RoomID
		}
		checkIn := b.CheckIn
		if in.CheckIn != nil {
			checkIn = domain.DateOnly(*in.CheckIn)
		}
		checkOut := b.CheckOut
		if in.CheckOut != nil {
			checkOut = domain.DateOnly(*in.CheckOut)
		}
		if !checkOut.After(checkIn) {
			return ErrInvalidDateRange
		}

		room, err := tx.Rooms.GetByID(ctx, roomID)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("room %d: %w", roomID, ErrNotFound)
			}
			return err
		}
		if !room.IsActive {
			return ErrRoomUnavailable
		}

		ok, err := isAvailable(ctx, tx, roomID, checkIn, checkOut, b.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRoomUnavailable
		}

		total, err := stayPrice(ctx, tx, room, checkIn, checkOut)
		if err != nil {
			return err
		}

		var discountAmount float64
		if b.DiscountID != nil {
			disc, err := tx.Discounts.GetByID(ctx, *b.DiscountID)
			if err != nil {
				return err
			}
			discountAmount = s.discounts.ComputeAmount(disc, total, checkIn, checkOut)
		}

		b.RoomID = roomID
		b.CheckIn = checkIn
		b.CheckOut = checkOut
		b.TotalPrice = round2(math.Max(0, total-discountAmount))
		b.DiscountAmount = discountAmount

		if err := tx.Bookings.UpdateStay(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelBooking frees the booking's nights for future stays. A consumed
// discount stays consumed.
func (s *Service) CancelBooking(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	err := s.tx.WithTx(ctx, func(tx Repos) error {
		b, err := tx.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if b.Status == domain.BookingCancelled || b.Status == domain.BookingCompleted {
			return ErrInvalidStatusTransition
		}
		return tx.Bookings.Cancel(ctx, bookingID, reason, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	return s.repos.Bookings.GetByID(ctx, bookingID)
}

func (s *Service) ConfirmBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingPending, domain.BookingConfirmed)
}

func (s *Service) CompleteBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingConfirmed, domain.BookingCompleted)
}

func (s *Service) transition(ctx context.Context, bookingID int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.repos.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status != from {
		return nil, ErrInvalidStatusTransition
	}
	if err := s.repos.Bookings.UpdateStatus(ctx, bookingID, to); err != nil {
		return nil, err
	}
	b.Status = to
	return b, nil
}

// CheckAvailability answers the public pre-booking question: free or not,
// and at what undiscounted price.
func (s *Service) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (*AvailabilityQuote, error) {
	room, err := s.repos.Rooms.GetByID(ctx, roomID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("room %d: %w", roomID, ErrNotFound)
		}
		return nil, err
	}

	available, err := s.IsAvailable(ctx, roomID, checkIn, checkOut, 0)
	if err != nil {
		return nil, err
	}
	price, err := s.StayPrice(ctx, room, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return &AvailabilityQuote{Available: available && room.IsActive, Price: price}, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.repos.Bookings.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListUserBookings(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.repos.Bookings.ListByUser(ctx, userID, limit, offset)
}

// runWithRetry executes fn in a transaction and retries it exactly once when
// the failure is a lost concurrency race: either a serialization failure or
// the night ledger's unique index firing. On retry the availability pre-check
// sees the committed winner and returns the friendlier ErrRoomUnavailable.
func (s *Service) runWithRetry(ctx context.Context, fn func(tx Repos) error) error {
	err := s.tx.WithTx(ctx, fn)
	if err == nil || !isRetryableConflict(err) {
		return err
	}

	log.Printf("booking_tx_conflict retry=1 error=%q", err.Error())
	err = s.tx.WithTx(ctx, fn)
	if err != nil && isRetryableConflict(err) {
		return ErrConflict
	}
	return err
}

func isRetryableConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code == "40001" {
		return true
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == "idx_booking_nights_room_night"
}
