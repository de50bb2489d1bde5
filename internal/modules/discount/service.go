package discount

import (
	"context"
	"fmt"
	"math"
	"time"

	"hoteladmin/internal/domain"
	"hoteladmin/internal/pkg/clock"
	"hoteladmin/internal/repository"
)

type Service struct {
	repo  DiscountRepository
	usage UsageCounter
	clock clock.Clock
}

func NewService(repo DiscountRepository, usage UsageCounter, clk clock.Clock) *Service {
	return &Service{repo: repo, usage: usage, clock: clk}
}

// Validate runs the eligibility chain against a candidate booking. Checks run
// in a fixed order and stop at the first failure, so callers always get the
// same reason for the same discount state.
func (s *Service) Validate(ctx context.Context, d *domain.Discount, bc BookingContext) (Result, error) {
	now := s.clock.Now()

	if d.Status != domain.DiscountActive {
		return Result{Reason: ReasonInactive}, nil
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return Result{Reason: ReasonNotStarted}, nil
	}
	if d.ValidTo != nil && now.After(*d.ValidTo) {
		return Result{Reason: ReasonExpired}, nil
	}
	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return Result{Reason: ReasonUsageLimitExceeded}, nil
	}
	if d.MinBookingAmount != nil && bc.BookingAmount < *d.MinBookingAmount {
		return Result{Reason: ReasonMinAmountNotMet}, nil
	}
	if d.ApplicableTo == domain.ScopeSpecificRooms && !d.AppliesToRoom(bc.RoomID) {
		return Result{Reason: ReasonRoomNotApplicable}, nil
	}
	if bc.UserID != nil {
		if d.UserLimit != nil {
			used, err := s.usage.CountUserDiscountUsage(ctx, *bc.UserID, d.ID)
			if err != nil {
				return Result{}, err
			}
			if used >= *d.UserLimit {
				return Result{Reason: ReasonUserLimitExceeded}, nil
			}
		}
		if d.ApplicableTo == domain.ScopeSpecificUsers && !d.AppliesToUser(*bc.UserID) {
			return Result{Reason: ReasonUserNotApplicable}, nil
		}
	}
	if bc.CheckIn != nil && domain.ContainsDate(d.ExcludeDates, *bc.CheckIn) {
		return Result{Reason: ReasonDateExcluded}, nil
	}
	if bc.CheckIn != nil && domain.ContainsDate(d.BlackoutDates, *bc.CheckIn) {
		return Result{Reason: ReasonDateBlackout}, nil
	}

	return Result{Valid: true}, nil
}

// ComputeAmount turns a validated discount into money off. The result is
// rounded to 2 decimals and clamped to [0, bookingAmount].
func (s *Service) ComputeAmount(d *domain.Discount, bookingAmount float64, checkIn, checkOut time.Time) float64 {
	var amount float64

	switch d.Type {
	case domain.DiscountPercentage:
		amount = bookingAmount * d.Value / 100
		if d.MaxDiscount != nil && amount > *d.MaxDiscount {
			amount = *d.MaxDiscount
		}
	case domain.DiscountFixedAmount:
		amount = math.Min(d.Value, bookingAmount)
	case domain.DiscountFreeNight:
		nights := domain.Nights(checkIn, checkOut)
		if nights == 0 {
			return 0
		}
		nightPrice := bookingAmount / float64(nights)
		amount = math.Min(nightPrice*d.Value, bookingAmount)
	default:
		return 0
	}

	amount = round2(amount)
	if amount < 0 {
		return 0
	}
	if amount > bookingAmount {
		return bookingAmount
	}
	return amount
}

// CheckCode backs the pre-checkout validation endpoint: look the code up,
// validate, and quote the amount in one call.
func (s *Service) CheckCode(ctx context.Context, code string, bc BookingContext) (*ValidateCodeResponse, error) {
	d, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	res, err := s.Validate(ctx, d, bc)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return &ValidateCodeResponse{Valid: false, Reason: string(res.Reason)}, nil
	}

	var in, out time.Time
	if bc.CheckIn != nil {
		in = *bc.CheckIn
	}
	if bc.CheckOut != nil {
		out = *bc.CheckOut
	}
	return &ValidateCodeResponse{
		Valid:  true,
		Amount: s.ComputeAmount(d, bc.BookingAmount, in, out),
	}, nil
}

// CreateDiscount validates a new discount at the construction boundary:
// date lists must parse as calendar dates and scope lists must match the
// applicable_to mode before anything is stored.
func (s *Service) CreateDiscount(ctx context.Context, req CreateDiscountRequest) (*domain.Discount, error) {
	d := &domain.Discount{
		Code:             req.Code,
		Type:             domain.DiscountType(req.Type),
		Value:            req.Value,
		Status:           domain.DiscountActive,
		MaxDiscount:      req.MaxDiscount,
		MinBookingAmount: req.MinBookingAmount,
		UsageLimit:       req.UsageLimit,
		UserLimit:        req.UserLimit,
		ApplicableTo:     domain.DiscountScope(req.ApplicableTo),
		RoomIDs:          req.RoomIDs,
		UserIDs:          req.UserIDs,
	}

	if d.Type == domain.DiscountPercentage && d.Value > 100 {
		return nil, fmt.Errorf("%w: percentage value over 100", ErrValidation)
	}
	if d.ApplicableTo == domain.ScopeSpecificRooms && len(d.RoomIDs) == 0 {
		return nil, fmt.Errorf("%w: specific_rooms requires room_ids", ErrValidation)
	}
	if d.ApplicableTo == domain.ScopeSpecificUsers && len(d.UserIDs) == 0 {
		return nil, fmt.Errorf("%w: specific_users requires user_ids", ErrValidation)
	}

	var err error
	if d.ValidFrom, err = parseOptionalTime(req.ValidFrom); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if d.ValidTo, err = parseOptionalTime(req.ValidTo); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if d.ValidFrom != nil && d.ValidTo != nil && d.ValidTo.Before(*d.ValidFrom) {
		return nil, fmt.Errorf("%w: valid_to before valid_from", ErrValidation)
	}
	if d.ExcludeDates, err = parseDateList(req.ExcludeDates); err != nil {
		return nil, fmt.Errorf("%w: exclude_dates: %v", ErrValidation, err)
	}
	if d.BlackoutDates, err = parseDateList(req.BlackoutDates); err != nil {
		return nil, fmt.Errorf("%w: blackout_dates: %v", ErrValidation, err)
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Discount, error) {
	return s.repo.List(ctx)
}

const dateLayout = "2006-01-02"

func parseOptionalTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		// plain dates are accepted too
		d, derr := time.Parse(dateLayout, v)
		if derr != nil {
			return nil, err
		}
		t = d
	}
	t = t.UTC()
	return &t, nil
}

func parseDateList(vs []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(vs))
	for _, v := range vs {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("bad date %q", v)
		}
		out = append(out, d.UTC())
	}
	return out, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
