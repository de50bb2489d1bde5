package booking

import (
	"context"
	"time"

	"hoteladmin/internal/domain"
)

// IsAvailable reports whether the room is free for every night of
// [checkIn, checkOut). excludeBookingID, when non-zero, ignores that booking
// so re-checking an edit does not collide with itself. Pure read; the
// orchestrator re-runs it inside its transaction before writing.
func (s *Service) IsAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) (bool, error) {
	return isAvailable(ctx, s.repos, roomID, checkIn, checkOut, excludeBookingID)
}

func isAvailable(ctx context.Context, r Repos, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) (bool, error) {
	in := domain.DateOnly(checkIn)
	out := domain.DateOnly(checkOut)
	if !out.After(in) {
		return false, ErrInvalidDateRange
	}

	overlapping, err := r.Bookings.ActiveRangesOverlapping(ctx, roomID, in, out, excludeBookingID)
	if err != nil {
		return false, err
	}
	if len(overlapping) > 0 {
		return false, nil
	}

	blocked, err := r.Calendar.BlockedDatesIn(ctx, roomID, in, out)
	if err != nil {
		return false, err
	}
	return len(blocked) == 0, nil
}
