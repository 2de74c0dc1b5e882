package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func stayDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStaysOverlap(t *testing.T) {
	exIn, exOut := stayDay("2026-03-10"), stayDay("2026-03-15")

	tests := []struct {
		name     string
		in, out  time.Time
		expected bool
	}{
		{"check-in inside existing stay", stayDay("2026-03-12"), stayDay("2026-03-18"), true},
		{"check-out inside existing stay", stayDay("2026-03-08"), stayDay("2026-03-12"), true},
		{"contains existing stay", stayDay("2026-03-09"), stayDay("2026-03-16"), true},
		{"same window", exIn, exOut, true},
		{"inside existing stay", stayDay("2026-03-11"), stayDay("2026-03-13"), true},
		{"ends on existing check-in", stayDay("2026-03-05"), stayDay("2026-03-10"), false},
		{"starts on existing check-out", stayDay("2026-03-15"), stayDay("2026-03-18"), false},
		{"entirely before", stayDay("2026-03-01"), stayDay("2026-03-05"), false},
		{"entirely after", stayDay("2026-03-20"), stayDay("2026-03-22"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StaysOverlap(exIn, exOut, tt.in, tt.out))
		})
	}
}

func TestOccupiesRooms(t *testing.T) {
	assert.ElementsMatch(t, []BookingStatus{BookingStatusConfirmed, BookingStatusCheckedIn}, OccupiesRooms())
}
