package service

import (
	"context"
	"strings"
	"time"

	"github.com/maribelle/nail-studio-api/internal/model"
	"github.com/maribelle/nail-studio-api/internal/queue"
)

// BookingStore is the persistence surface the booking service writes
// through. The WithClaim/WithRelease operations are atomic: the
// appointment write and its slot-claim write both land or neither
// does. Cancellation in particular must not commit a terminal status
// while the claim survives, because terminal appointments accept no
// further transition that could free it.
type BookingStore interface {
	CreateWithClaim(ctx context.Context, a *model.Appointment) error
	GetByID(ctx context.Context, id uint64) (model.Appointment, error)
	UpdateStatus(ctx context.Context, id uint64, fromStatus, toStatus string) error
	UpdateStatusWithRelease(ctx context.Context, id uint64, fromStatus, toStatus string) error
	DeleteWithRelease(ctx context.Context, id uint64) error
}

// UserGetter loads a user for the booking precondition checks.
type UserGetter interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// SlotChecker answers whether a time is published for a technician
// and date.
type SlotChecker interface {
	IsBookable(ctx context.Context, technicianID uint64, date, slot string) (bool, error)
}

// ConfirmPublisher emits the appointment.confirmed event. Publishing
// is best-effort; the booking service logs nothing itself and ignores
// the returned error.
type ConfirmPublisher func(ctx context.Context, ev queue.AppointmentConfirmedEvent) error

// BookingRequest carries the customer booking form.
type BookingRequest struct {
	UserID        uint64
	TechnicianID  uint64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Service       string
	Date          string
	Slot          string
	Notes         string
}

// BookingService validates and writes appointments. The transition
// table is enforced here: PENDING -> CONFIRMED | CANCELLED,
// CONFIRMED -> COMPLETED | CANCELLED, terminal states immutable.
type BookingService struct {
	store   BookingStore
	users   UserGetter
	slots   SlotChecker
	publish ConfirmPublisher
}

// NewBookingService constructs a BookingService. publish may be nil
// to disable confirmation events (tests).
func NewBookingService(store BookingStore, users UserGetter, slots SlotChecker, publish ConfirmPublisher) *BookingService {
	return &BookingService{store: store, users: users, slots: slots, publish: publish}
}

// Book validates the request and creates a PENDING appointment. The
// order matters: field validation, then the account preconditions,
// then the availability membership check, and only then the write,
// so a rejected booking performs zero store mutations.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (model.Appointment, error) {
	if err := validateRequest(req); err != nil {
		return model.Appointment{}, err
	}
	u, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return model.Appointment{}, err
	}
	if !u.IsApproved {
		return model.Appointment{}, ErrNotApproved
	}
	if !u.HasSignedTerms {
		return model.Appointment{}, ErrTermsNotSigned
	}
	ok, err := s.slots.IsBookable(ctx, req.TechnicianID, req.Date, req.Slot)
	if err != nil {
		return model.Appointment{}, err
	}
	if !ok {
		return model.Appointment{}, ErrSlotUnavailable
	}
	a := model.Appointment{
		UserID:        req.UserID,
		TechnicianID:  req.TechnicianID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Service:       req.Service,
		Date:          req.Date,
		Slot:          req.Slot,
		Notes:         req.Notes,
		Status:        model.StatusPending,
	}
	if err := s.store.CreateWithClaim(ctx, &a); err != nil {
		return model.Appointment{}, err
	}
	return a, nil
}

// allowedTransitions is the enforced status table. Cancelling an
// appointment is allowed from either live state; nothing moves out of
// COMPLETED or CANCELLED.
var allowedTransitions = map[string]map[string]bool{
	model.StatusPending: {
		model.StatusConfirmed: true,
		model.StatusCancelled: true,
	},
	model.StatusConfirmed: {
		model.StatusCompleted: true,
		model.StatusCancelled: true,
	},
}

// CanTransition reports whether the status table permits from -> to.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

// UpdateStatus transitions an appointment, enforcing the table. On
// confirmation the appointment.confirmed event is published
// best-effort; on cancellation the slot claim is released so the time
// can be rebooked.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint64, toStatus, technicianName string) (model.Appointment, error) {
	if !model.ValidStatus(toStatus) {
		return model.Appointment{}, &ValidationError{Field: "status", Msg: "unknown status"}
	}
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	if !CanTransition(a.Status, toStatus) {
		return model.Appointment{}, ErrInvalidTransition
	}
	// Cancellation releases the slot claim in the same transaction as
	// the status change; the appointment row keeps the slot string for
	// history. A cancel that commits without freeing the claim would
	// block the slot forever, since CANCELLED is terminal.
	if toStatus == model.StatusCancelled {
		if err := s.store.UpdateStatusWithRelease(ctx, id, a.Status, toStatus); err != nil {
			return model.Appointment{}, err
		}
	} else if err := s.store.UpdateStatus(ctx, id, a.Status, toStatus); err != nil {
		return model.Appointment{}, err
	}
	prev := a.Status
	a.Status = toStatus
	if toStatus == model.StatusConfirmed {
		if s.publish != nil && prev == model.StatusPending {
			_ = s.publish(ctx, queue.AppointmentConfirmedEvent{
				AppointmentID:  a.ID,
				UserID:         a.UserID,
				TechnicianID:   a.TechnicianID,
				TechnicianName: technicianName,
				CustomerName:   a.CustomerName,
				CustomerEmail:  a.CustomerEmail,
				Service:        a.Service,
				Date:           a.Date,
				Slot:           a.Slot,
				ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
			})
		}
	}
	return a, nil
}

// Delete hard-deletes an appointment and releases its claim.
func (s *BookingService) Delete(ctx context.Context, id uint64) error {
	return s.store.DeleteWithRelease(ctx, id)
}

// CancelOwn lets a customer cancel their own appointment while it is
// still pending. Appointments belonging to someone else report
// ErrForbidden through the caller's ownership check; here only the
// state rule is enforced.
func (s *BookingService) CancelOwn(ctx context.Context, userID, id uint64) error {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return ErrNotOwner
	}
	if a.Status != model.StatusPending {
		return ErrInvalidTransition
	}
	return s.store.UpdateStatusWithRelease(ctx, id, model.StatusPending, model.StatusCancelled)
}

func validateRequest(req BookingRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return &ValidationError{Field: "name", Msg: "required"}
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return &ValidationError{Field: "email", Msg: "required"}
	}
	if req.TechnicianID == 0 {
		return &ValidationError{Field: "technician_id", Msg: "required"}
	}
	if strings.TrimSpace(req.Service) == "" {
		return &ValidationError{Field: "service", Msg: "required"}
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return &ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(req.Slot) == "" {
		return &ValidationError{Field: "time", Msg: "required"}
	}
	return nil
}
