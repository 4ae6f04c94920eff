package jobs

import (
	"testing"
	"time"
)

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		date time.Time
		want bool
	}{
		{time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC), true},
		{time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC), false},
		{time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2028, time.February, 28, 0, 0, 0, 0, time.UTC), false}, // leap year
		{time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC), true},
	}
	for _, tc := range tests {
		if got := lastDayOfMonth(tc.date); got != tc.want {
			t.Fatalf("lastDayOfMonth(%v): expected %v, got %v", tc.date, tc.want, got)
		}
	}
}
