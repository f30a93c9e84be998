package repository

import (
	"context"

	"github.com/maribelle/nail-studio-api/internal/model"
	"github.com/maribelle/nail-studio-api/internal/schedule"
)

// BookingStore groups the appointment and availability repositories
// behind the paired writes booking needs to run atomically: claim the
// slot and insert the appointment, cancel and release the claim, or
// delete and release the claim, each in one transaction.
type BookingStore struct {
	Appointments *AppointmentRepo
	Availability *AvailabilityRepo
}

// NewBookingStore constructs a BookingStore over the two repositories.
func NewBookingStore(appts *AppointmentRepo, avail *AvailabilityRepo) *BookingStore {
	return &BookingStore{Appointments: appts, Availability: avail}
}

// CreateWithClaim inserts the appointment and claims its slot inside
// one transaction. When the slot is already claimed the whole booking
// rolls back and ErrSlotTaken propagates; no partial write survives.
func (s *BookingStore) CreateWithClaim(ctx context.Context, a *model.Appointment) error {
	tx, err := s.Appointments.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := s.Appointments.CreateTx(ctx, tx, a); err != nil {
		return err
	}
	key := schedule.SlotKey(a.Slot)
	if err := s.Availability.ClaimSlotTx(ctx, tx, a.TechnicianID, a.Date, key, a.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns one appointment.
func (s *BookingStore) GetByID(ctx context.Context, id uint64) (model.Appointment, error) {
	return s.Appointments.GetByID(ctx, id)
}

// UpdateStatus compare-and-sets the appointment status.
func (s *BookingStore) UpdateStatus(ctx context.Context, id uint64, fromStatus, toStatus string) error {
	return s.Appointments.UpdateStatus(ctx, id, fromStatus, toStatus)
}

// UpdateStatusWithRelease compare-and-sets the status and frees the
// slot claim in one transaction. Used for cancellation: either the
// appointment reaches CANCELLED and its slot is rebookable, or
// neither happens. A claim left behind by a terminal appointment
// could never be freed again, since terminal states reject further
// transitions.
func (s *BookingStore) UpdateStatusWithRelease(ctx context.Context, id uint64, fromStatus, toStatus string) error {
	tx, err := s.Appointments.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := s.Appointments.UpdateStatusTx(ctx, tx, id, fromStatus, toStatus); err != nil {
		return err
	}
	if err := s.Availability.ReleaseClaimTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// DeleteWithRelease hard-deletes an appointment and releases its slot
// claim in one transaction.
func (s *BookingStore) DeleteWithRelease(ctx context.Context, id uint64) error {
	tx, err := s.Appointments.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := s.Appointments.DeleteTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.Availability.ReleaseClaimTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
