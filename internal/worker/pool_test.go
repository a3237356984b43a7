package worker

import (
	"testing"
	"time"
)

func TestFiresToday(t *testing.T) {
	const (
		sunday    = 1 << 0
		monday    = 1 << 1
		wednesday = 1 << 3
		saturday  = 1 << 6
	)

	tests := []struct {
		name    string
		days    int
		weekday time.Weekday
		want    bool
	}{
		{"zero mask fires every day", 0, time.Wednesday, true},
		{"zero mask fires on sunday", 0, time.Sunday, true},
		{"sunday bit on sunday", sunday, time.Sunday, true},
		{"sunday bit on monday", sunday, time.Monday, false},
		{"weekday combination hit", monday | wednesday, time.Wednesday, true},
		{"weekday combination miss", monday | wednesday, time.Friday, false},
		{"saturday bit on saturday", saturday, time.Saturday, true},
		{"full week mask", 0x7F, time.Thursday, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := firesToday(tc.days, tc.weekday); got != tc.want {
				t.Errorf("firesToday(%#b, %s) = %v, want %v", tc.days, tc.weekday, got, tc.want)
			}
		})
	}
}
