package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maribelle/nail-studio-api/internal/repository"
)

// fakeAvailabilityStore mimics the versioned overwrite semantics of
// the real repository, including injected version conflicts.
type fakeAvailabilityStore struct {
	rows map[string]struct {
		slots   []string
		version uint64
	}
	conflictsLeft int // SaveSlots fails with ErrVersionConflict this many times
	saves         int
}

func newFakeAvailabilityStore() *fakeAvailabilityStore {
	return &fakeAvailabilityStore{rows: map[string]struct {
		slots   []string
		version uint64
	}{}}
}

func availKey(tid uint64, date string) string { return fmt.Sprintf("%d/%s", tid, date) }

func (f *fakeAvailabilityStore) GetSlots(ctx context.Context, tid uint64, date string) ([]string, uint64, error) {
	r, ok := f.rows[availKey(tid, date)]
	if !ok {
		return []string{}, 0, nil
	}
	return append([]string(nil), r.slots...), r.version, nil
}

func (f *fakeAvailabilityStore) SaveSlots(ctx context.Context, tid uint64, date string, slots []string, expectVersion uint64) error {
	f.saves++
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		// Someone else moved the row between the caller's read and
		// this write.
		r := f.rows[availKey(tid, date)]
		r.version++
		f.rows[availKey(tid, date)] = r
		return repository.ErrVersionConflict
	}
	r := f.rows[availKey(tid, date)]
	if r.version != expectVersion {
		return repository.ErrVersionConflict
	}
	r.slots = append([]string(nil), slots...)
	r.version++
	f.rows[availKey(tid, date)] = r
	return nil
}

func (f *fakeAvailabilityStore) DeleteSlots(ctx context.Context, tid uint64, date string) error {
	delete(f.rows, availKey(tid, date))
	return nil
}

func (f *fakeAvailabilityStore) GetSlotsForRange(ctx context.Context, tid uint64, start, end string) (map[string][]string, error) {
	out := map[string][]string{}
	for k, r := range f.rows {
		if len(r.slots) > 0 && k == availKey(tid, "2026-09-12") {
			out["2026-09-12"] = append([]string(nil), r.slots...)
		}
	}
	return out, nil
}

func TestAddSlotsMergesWithExisting(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	ctx := context.Background()

	_, err := svc.AddSlots(ctx, 7, "2026-09-12", []string{"9:00 AM", "2:00 PM"})
	require.NoError(t, err)

	// A second add in 24-hour form must union, not overwrite, and the
	// duplicate 2pm collapses.
	got, err := svc.AddSlots(ctx, 7, "2026-09-12", []string{"14:00", "11:00"})
	require.NoError(t, err)

	assert.Equal(t, []string{"9:00 AM", "11:00 AM", "2:00 PM"}, got)
}

func TestAddSlotsRetriesOnVersionConflict(t *testing.T) {
	store := newFakeAvailabilityStore()
	store.conflictsLeft = 2 // two stale writes, third attempt lands
	svc := NewAvailabilityService(store)

	got, err := svc.AddSlots(context.Background(), 7, "2026-09-12", []string{"10:00"})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM"}, got)
	assert.Equal(t, 3, store.saves)
}

func TestAddSlotsGivesUpAfterRetries(t *testing.T) {
	store := newFakeAvailabilityStore()
	store.conflictsLeft = 10
	svc := NewAvailabilityService(store)

	_, err := svc.AddSlots(context.Background(), 7, "2026-09-12", []string{"10:00"})

	assert.ErrorIs(t, err, ErrSaveContention)
	assert.Equal(t, saveAttempts, store.saves)
}

func TestReplaceSlotsOverwrites(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	ctx := context.Background()

	_, err := svc.AddSlots(ctx, 7, "2026-09-12", []string{"9:00 AM", "10:00 AM", "11:00 AM"})
	require.NoError(t, err)

	got, err := svc.ReplaceSlots(ctx, 7, "2026-09-12", []string{"13:00", "1:00 PM", "15:30"})
	require.NoError(t, err)

	// Replace discards the morning block entirely and normalizes the
	// duplicate 1pm.
	assert.Equal(t, []string{"1:00 PM", "3:30 PM"}, got)
}

func TestSlotsAbsentDateIsEmptyNotError(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityStore())

	got, err := svc.Slots(context.Background(), 7, "2030-01-01")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIsBookableMatchesAcrossClockForms(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	ctx := context.Background()

	_, err := svc.AddSlots(ctx, 7, "2026-09-12", []string{"2:00 PM"})
	require.NoError(t, err)

	for _, form := range []string{"2:00 PM", "14:00"} {
		ok, err := svc.IsBookable(ctx, 7, "2026-09-12", form)
		require.NoError(t, err)
		assert.True(t, ok, form)
	}

	ok, err := svc.IsBookable(ctx, 7, "2026-09-12", "3:00 PM")
	require.NoError(t, err)
	assert.False(t, ok)

	// Unpublished date: nothing is bookable.
	ok, err = svc.IsBookable(ctx, 7, "2026-09-13", "2:00 PM")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteUnpublishesDate(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	ctx := context.Background()

	_, err := svc.AddSlots(ctx, 7, "2026-09-12", []string{"9:00 AM"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 7, "2026-09-12"))

	got, err := svc.Slots(ctx, 7, "2026-09-12")
	require.NoError(t, err)
	assert.Empty(t, got)

	// Deleting an absent date stays a no-op.
	assert.NoError(t, svc.Delete(ctx, 7, "2026-09-12"))
}
