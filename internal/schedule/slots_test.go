package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeSlotsDeduplicatesAcrossFormats(t *testing.T) {
	// The two representations of 9am and 2pm must collapse to one entry
	// each, and the new 11am slot lands in chronological position.
	existing := []string{"9:00 AM", "2:00 PM"}
	incoming := []string{"09:00", "14:00", "11:00"}

	got := MergeSlots(existing, incoming)

	assert.Equal(t, []string{"9:00 AM", "11:00 AM", "2:00 PM"}, got)
}

func TestMergeSlotsEmptyExisting(t *testing.T) {
	got := MergeSlots(nil, []string{"15:00", "9:30 AM", "09:30", "08:00"})
	assert.Equal(t, []string{"8:00 AM", "9:30 AM", "3:00 PM"}, got)
}

func TestMergeSlotsBothEmpty(t *testing.T) {
	assert.Empty(t, MergeSlots(nil, nil))
	assert.Empty(t, MergeSlots([]string{}, []string{}))
}

func TestMergeSlotsIdempotent(t *testing.T) {
	a := []string{"10:00 AM", "1:00 PM"}
	b := []string{"13:00", "16:30"}

	once := MergeSlots(a, b)
	twice := MergeSlots(once, b)

	assert.Equal(t, once, twice)
}

func TestMergeSlotsOrderIndependent(t *testing.T) {
	a := []string{"11:00", "9:00 AM"}
	b := []string{"2:00 PM", "09:00"}

	// Result is always chronological regardless of which side each
	// slot arrived on.
	assert.Equal(t, MergeSlots(a, b), MergeSlots(b, a))
}

func TestContainsSlot(t *testing.T) {
	slots := []string{"9:00 AM", "11:00 AM", "2:00 PM"}

	assert.True(t, ContainsSlot(slots, "9:00 AM"))
	assert.True(t, ContainsSlot(slots, "09:00"))
	assert.True(t, ContainsSlot(slots, "14:00"))
	assert.False(t, ContainsSlot(slots, "10:00"))
	assert.False(t, ContainsSlot(nil, "9:00 AM"))
}
