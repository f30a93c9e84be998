// Package schedule contains the pure time-slot logic shared by the
// availability and booking layers: 12/24-hour conversion and the
// merge of admin-edited slot sets. Nothing in this package touches
// the database or the network.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// To12Hour converts a zero-padded 24-hour "HH:MM" string into the
// "H:MM AM"/"H:MM PM" display form used everywhere slots are shown.
// Input that already carries an AM/PM marker is returned unchanged,
// which makes the function idempotent. Malformed input is also
// returned unchanged; slot strings come from our own pickers so a
// silent pass-through is preferable to an error path here.
func To12Hour(t string) string {
	upper := strings.ToUpper(t)
	if strings.Contains(upper, "AM") || strings.Contains(upper, "PM") {
		return t
	}
	h, m, ok := splitHourMinute(t)
	if !ok {
		return t
	}
	suffix := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		h -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// To24Hour is the inverse of To12Hour. It parses "H:MM AM|PM" case
// insensitively and returns a zero-padded "HH:MM" string. Input
// without an AM/PM marker is returned unchanged.
func To24Hour(t string) string {
	upper := strings.ToUpper(strings.TrimSpace(t))
	var pm bool
	switch {
	case strings.HasSuffix(upper, "PM"):
		pm = true
	case strings.HasSuffix(upper, "AM"):
		pm = false
	default:
		return t
	}
	clock := strings.TrimSpace(upper[:len(upper)-2])
	h, m, ok := splitHourMinute(clock)
	if !ok {
		return t
	}
	if pm {
		if h != 12 {
			h += 12
		}
	} else if h == 12 {
		h = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// splitHourMinute parses "H:MM" or "HH:MM" into its numeric parts.
// The boolean is false when the string is not a plausible clock time.
func splitHourMinute(s string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, 0, false
	}
	return h, m, true
}
