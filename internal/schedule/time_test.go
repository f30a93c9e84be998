package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo12Hour(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"01:05", "1:05 AM"},
		{"09:00", "9:00 AM"},
		{"11:59", "11:59 AM"},
		{"12:00", "12:00 PM"},
		{"12:45", "12:45 PM"},
		{"13:00", "1:00 PM"},
		{"14:30", "2:30 PM"},
		{"23:59", "11:59 PM"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, To12Hour(tc.in), "To12Hour(%q)", tc.in)
	}
}

func TestTo12HourPassThrough(t *testing.T) {
	// Already-converted and malformed inputs come back unchanged.
	for _, in := range []string{"9:00 AM", "2:30 pm", "", "noon", "25:00", "9"} {
		assert.Equal(t, in, To12Hour(in), "To12Hour(%q)", in)
	}
}

func TestTo24Hour(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12:00 AM", "00:00"},
		{"12:30 am", "00:30"},
		{"1:05 AM", "01:05"},
		{"9:00 AM", "09:00"},
		{"11:59 AM", "11:59"},
		{"12:00 PM", "12:00"},
		{"1:00 pm", "13:00"},
		{"2:30 PM", "14:30"},
		{"11:59 PM", "23:59"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, To24Hour(tc.in), "To24Hour(%q)", tc.in)
	}
}

func TestTo24HourPassThrough(t *testing.T) {
	for _, in := range []string{"09:00", "14:30", "", "late"} {
		assert.Equal(t, in, To24Hour(in), "To24Hour(%q)", in)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	// Every valid zero-padded 24-hour time must survive a round trip,
	// and every rendered 12-hour time must survive the inverse trip.
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 15, 30, 45, 59} {
			t24 := fmt.Sprintf("%02d:%02d", h, m)
			t12 := To12Hour(t24)
			assert.Equal(t, t24, To24Hour(t12), "round trip of %q via %q", t24, t12)
			assert.Equal(t, t12, To12Hour(To24Hour(t12)), "inverse round trip of %q", t12)
		}
	}
}
