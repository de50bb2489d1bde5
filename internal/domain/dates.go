package domain

import "time"

// DateOnly drops the time-of-day component and pins the date to UTC. All
// calendar math in the service works on these normalized values.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights counts the nights in the half-open stay [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) int {
	in := DateOnly(checkIn)
	out := DateOnly(checkOut)
	if !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// EachNight lists every night of the stay, check-in included, checkout
// excluded.
func EachNight(checkIn, checkOut time.Time) []time.Time {
	in := DateOnly(checkIn)
	out := DateOnly(checkOut)
	var nights []time.Time
	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// RangesOverlap reports whether the half-open ranges [a1,a2) and [b1,b2)
// share at least one night. Back-to-back stays do not overlap.
func RangesOverlap(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// ContainsDate reports whether dates holds d, comparing calendar days only.
func ContainsDate(dates []time.Time, d time.Time) bool {
	day := DateOnly(d)
	for _, x := range dates {
		if DateOnly(x).Equal(day) {
			return true
		}
	}
	return false
}
