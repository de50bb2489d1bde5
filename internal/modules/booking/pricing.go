package booking

import (
	"context"
	"math"
	"time"

	"hoteladmin/internal/domain"
)

// StayPrice computes the undiscounted total for [checkIn, checkOut). Each
// night resolves in priority order: special-price override, then weekend
// price, then base price. The total is rounded to 2 decimals once at the end
// so per-night rounding cannot compound.
func (s *Service) StayPrice(ctx context.Context, room *domain.Room, checkIn, checkOut time.Time) (float64, error) {
	return stayPrice(ctx, s.repos, room, checkIn, checkOut)
}

func stayPrice(ctx context.Context, r Repos, room *domain.Room, checkIn, checkOut time.Time) (float64, error) {
	in := domain.DateOnly(checkIn)
	out := domain.DateOnly(checkOut)
	if !out.After(in) {
		return 0, ErrInvalidDateRange
	}

	overrides, err := r.Calendar.SpecialPricesIn(ctx, room.ID, in, out)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, night := range domain.EachNight(in, out) {
		if sp, ok := overrides[night]; ok {
			total += overridePrice(room.BasePrice, sp)
			continue
		}
		total += nightlyPrice(room, night)
	}
	return round2(total), nil
}

func overridePrice(basePrice float64, sp domain.SpecialPrice) float64 {
	switch sp.Mode {
	case domain.PriceModeFixed:
		return sp.Amount
	case domain.PriceModeIncrease:
		return basePrice + sp.Amount
	case domain.PriceModeDecrease:
		return math.Max(0, basePrice-sp.Amount)
	default:
		return basePrice
	}
}

func nightlyPrice(room *domain.Room, night time.Time) float64 {
	if domain.IsWeekend(night) && room.WeekendPrice != nil {
		return *room.WeekendPrice
	}
	return room.BasePrice
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
