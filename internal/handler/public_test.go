package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRange(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		ok    bool
	}{
		{"single day", "2026-03-01", "2026-03-01", true},
		{"one week", "2026-03-01", "2026-03-07", true},
		{"two months", "2026-03-01", "2026-05-01", true},
		{"end before start", "2026-03-07", "2026-03-01", false},
		{"bad start", "03/01/2026", "2026-03-07", false},
		{"bad end", "2026-03-01", "tomorrow", false},
		{"empty", "", "", false},
		{"full year", "2026-01-01", "2026-12-31", false},
		{"just over the cap", "2026-03-01", "2026-05-02", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, validRange(tc.start, tc.end))
		})
	}
}
