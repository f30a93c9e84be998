package service

import (
	"context"
	"errors"

	"github.com/maribelle/nail-studio-api/internal/repository"
	"github.com/maribelle/nail-studio-api/internal/schedule"
)

// AvailabilityStore is the slice of the availability repository the
// service needs. Absence of a record is not an error: GetSlots yields
// an empty list and version 0. SaveSlots is always a full overwrite
// and reports repository.ErrVersionConflict when the row moved since
// the given version was read.
type AvailabilityStore interface {
	GetSlots(ctx context.Context, technicianID uint64, date string) ([]string, uint64, error)
	SaveSlots(ctx context.Context, technicianID uint64, date string, slots []string, expectVersion uint64) error
	DeleteSlots(ctx context.Context, technicianID uint64, date string) error
	GetSlotsForRange(ctx context.Context, technicianID uint64, startDate, endDate string) (map[string][]string, error)
}

// saveAttempts bounds the optimistic retry loop on concurrent admin
// edits of the same date.
const saveAttempts = 3

// AvailabilityService applies merge semantics on top of the plain
// overwrite store: admin saves never silently drop slots another
// admin added in between.
type AvailabilityService struct {
	store AvailabilityStore
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(store AvailabilityStore) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// Slots returns the published slot list for a date, empty when none.
func (s *AvailabilityService) Slots(ctx context.Context, technicianID uint64, date string) ([]string, error) {
	slots, _, err := s.store.GetSlots(ctx, technicianID, date)
	return slots, err
}

// AddSlots merges incoming slots into the date's existing set and
// persists the union. The read-merge-write runs under the store's
// version check and retries on conflict, so two concurrent adds both
// land. Returns the stored slot list.
func (s *AvailabilityService) AddSlots(ctx context.Context, technicianID uint64, date string, incoming []string) ([]string, error) {
	for attempt := 0; attempt < saveAttempts; attempt++ {
		existing, version, err := s.store.GetSlots(ctx, technicianID, date)
		if err != nil {
			return nil, err
		}
		merged := schedule.MergeSlots(existing, incoming)
		err = s.store.SaveSlots(ctx, technicianID, date, merged, version)
		if err == nil {
			return merged, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, ErrSaveContention
}

// ReplaceSlots sets the date's slot list to exactly the given set,
// normalized to the canonical display form. Unlike AddSlots it does
// not union with what is stored, but it still goes through the
// version check so a replace cannot clobber an unseen concurrent
// edit.
func (s *AvailabilityService) ReplaceSlots(ctx context.Context, technicianID uint64, date string, slots []string) ([]string, error) {
	normalized := schedule.MergeSlots(nil, slots)
	for attempt := 0; attempt < saveAttempts; attempt++ {
		_, version, err := s.store.GetSlots(ctx, technicianID, date)
		if err != nil {
			return nil, err
		}
		err = s.store.SaveSlots(ctx, technicianID, date, normalized, version)
		if err == nil {
			return normalized, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, ErrSaveContention
}

// Delete removes the whole-date record. Absent dates are fine.
func (s *AvailabilityService) Delete(ctx context.Context, technicianID uint64, date string) error {
	return s.store.DeleteSlots(ctx, technicianID, date)
}

// Calendar returns the date -> slots mapping for a bounded range,
// used to pre-load the booking calendar.
func (s *AvailabilityService) Calendar(ctx context.Context, technicianID uint64, startDate, endDate string) (map[string][]string, error) {
	return s.store.GetSlotsForRange(ctx, technicianID, startDate, endDate)
}

// IsBookable reports whether the requested time is a member of the
// technician's published availability for the date, comparing on the
// canonical 24-hour key. This is the explicit server-side check run
// at submission time; the UI offering only listed slots is not
// trusted.
func (s *AvailabilityService) IsBookable(ctx context.Context, technicianID uint64, date, slot string) (bool, error) {
	slots, _, err := s.store.GetSlots(ctx, technicianID, date)
	if err != nil {
		return false, err
	}
	return schedule.ContainsSlot(slots, slot), nil
}
