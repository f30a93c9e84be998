package schedule

import "sort"

// SlotKey returns the canonical 24-hour form of a slot string. Two
// slot strings denote the same time exactly when their keys are equal,
// so this is the comparison key for dedupe and membership checks.
func SlotKey(slot string) string {
	return To24Hour(slot)
}

// MergeSlots returns the union of existing and incoming slot sets,
// de-duplicated on the canonical 24-hour key, sorted chronologically
// and rendered in the 12-hour display form. The result depends only
// on the set of times present, not on the order of either input, and
// merging the same incoming set twice is a no-op.
func MergeSlots(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	keys := make([]string, 0, len(existing)+len(incoming))
	for _, list := range [][]string{existing, incoming} {
		for _, s := range list {
			k := SlotKey(s)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	// Canonical keys are zero-padded HH:MM, so lexicographic order is
	// chronological order.
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = To12Hour(k)
	}
	return out
}

// ContainsSlot reports whether want is a member of slots, comparing on
// the canonical 24-hour key so that "9:00 AM" and "09:00" match.
func ContainsSlot(slots []string, want string) bool {
	key := SlotKey(want)
	for _, s := range slots {
		if SlotKey(s) == key {
			return true
		}
	}
	return false
}
