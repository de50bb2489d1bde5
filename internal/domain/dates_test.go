package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestDateOnly(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	in := time.Date(2026, 1, 10, 23, 45, 12, 0, loc)
	got := DateOnly(in)

	assert.Equal(t, d(2026, 1, 10), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"two nights", d(2026, 1, 10), d(2026, 1, 12), 2},
		{"single night", d(2026, 1, 10), d(2026, 1, 11), 1},
		{"same day", d(2026, 1, 10), d(2026, 1, 10), 0},
		{"inverted", d(2026, 1, 12), d(2026, 1, 10), 0},
		{"across month end", d(2026, 1, 30), d(2026, 2, 2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestEachNight(t *testing.T) {
	nights := EachNight(d(2026, 1, 10), d(2026, 1, 13))

	assert.Equal(t, []time.Time{d(2026, 1, 10), d(2026, 1, 11), d(2026, 1, 12)}, nights)
	assert.NotContains(t, nights, d(2026, 1, 13))
}

func TestEachNight_EmptyRange(t *testing.T) {
	assert.Empty(t, EachNight(d(2026, 1, 10), d(2026, 1, 10)))
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(d(2026, 1, 9)))  // Friday
	assert.True(t, IsWeekend(d(2026, 1, 10))) // Saturday
	assert.True(t, IsWeekend(d(2026, 1, 11))) // Sunday
	assert.False(t, IsWeekend(d(2026, 1, 12))) // Monday
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a1   time.Time
		a2   time.Time
		b1   time.Time
		b2   time.Time
		want bool
	}{
		{"shared night", d(2026, 1, 10), d(2026, 1, 12), d(2026, 1, 11), d(2026, 1, 13), true},
		{"back to back", d(2026, 1, 10), d(2026, 1, 12), d(2026, 1, 12), d(2026, 1, 14), false},
		{"contained", d(2026, 1, 10), d(2026, 1, 15), d(2026, 1, 11), d(2026, 1, 12), true},
		{"identical", d(2026, 1, 10), d(2026, 1, 12), d(2026, 1, 10), d(2026, 1, 12), true},
		{"disjoint", d(2026, 1, 10), d(2026, 1, 12), d(2026, 1, 20), d(2026, 1, 22), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangesOverlap(tt.a1, tt.a2, tt.b1, tt.b2))
			// overlap is symmetric
			assert.Equal(t, tt.want, RangesOverlap(tt.b1, tt.b2, tt.a1, tt.a2))
		})
	}
}

func TestContainsDate(t *testing.T) {
	dates := []time.Time{d(2026, 7, 4), d(2026, 12, 25)}

	assert.True(t, ContainsDate(dates, d(2026, 7, 4)))
	// time-of-day is ignored
	assert.True(t, ContainsDate(dates, time.Date(2026, 7, 4, 18, 30, 0, 0, time.UTC)))
	assert.False(t, ContainsDate(dates, d(2026, 7, 5)))
	assert.False(t, ContainsDate(nil, d(2026, 7, 4)))
}
