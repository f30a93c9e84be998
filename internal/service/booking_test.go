package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maribelle/nail-studio-api/internal/model"
	"github.com/maribelle/nail-studio-api/internal/queue"
)

// fakeBookingStore records mutations so tests can assert that a
// rejected request never touches the store.
type fakeBookingStore struct {
	appts    map[uint64]model.Appointment
	nextID   uint64
	creates  int
	releases []uint64
	deletes  []uint64

	createErr  error
	updateErr  error
	releaseErr error // fails UpdateStatusWithRelease as a rolled-back tx
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{appts: map[uint64]model.Appointment{}, nextID: 1}
}

func (f *fakeBookingStore) CreateWithClaim(ctx context.Context, a *model.Appointment) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = f.nextID
	f.nextID++
	f.appts[a.ID] = *a
	return nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id uint64) (model.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return model.Appointment{}, sql.ErrNoRows
	}
	return a, nil
}

func (f *fakeBookingStore) UpdateStatus(ctx context.Context, id uint64, from, to string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	a := f.appts[id]
	a.Status = to
	f.appts[id] = a
	return nil
}

func (f *fakeBookingStore) UpdateStatusWithRelease(ctx context.Context, id uint64, from, to string) error {
	// A failed release rolls back the whole transaction: the status
	// stays put and no claim is freed.
	if f.releaseErr != nil {
		return f.releaseErr
	}
	if err := f.UpdateStatus(ctx, id, from, to); err != nil {
		return err
	}
	f.releases = append(f.releases, id)
	return nil
}

func (f *fakeBookingStore) DeleteWithRelease(ctx context.Context, id uint64) error {
	if _, ok := f.appts[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.appts, id)
	f.deletes = append(f.deletes, id)
	return nil
}

type fakeUsers struct {
	users map[uint64]model.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

type fakeSlots struct {
	bookable map[string]bool // "tid/date/slot"
	err      error
}

func (f *fakeSlots) IsBookable(ctx context.Context, technicianID uint64, date, slot string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.bookable[slotKey(technicianID, date, slot)], nil
}

func slotKey(tid uint64, date, slot string) string {
	return fmt.Sprintf("%d/%s/%s", tid, date, slot)
}

func approvedUser(id uint64) model.User {
	return model.User{ID: id, Role: "CUSTOMER", IsApproved: true, HasSignedTerms: true}
}

func validBooking(userID uint64) BookingRequest {
	return BookingRequest{
		UserID:        userID,
		TechnicianID:  7,
		CustomerName:  "Dana",
		CustomerEmail: "Dana@Example.com",
		Service:       "Gel Manicure",
		Date:          "2026-09-12",
		Slot:          "2:00 PM",
	}
}

func newBookingFixture() (*BookingService, *fakeBookingStore, *fakeSlots) {
	store := newFakeBookingStore()
	users := &fakeUsers{users: map[uint64]model.User{1: approvedUser(1)}}
	slots := &fakeSlots{bookable: map[string]bool{
		slotKey(7, "2026-09-12", "2:00 PM"): true,
	}}
	return NewBookingService(store, users, slots, nil), store, slots
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	svc, store, _ := newBookingFixture()

	a, err := svc.Book(context.Background(), validBooking(1))

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, a.Status)
	assert.Equal(t, "dana@example.com", a.CustomerEmail)
	assert.Equal(t, 1, store.creates)
}

func TestBookValidationStopsBeforeStore(t *testing.T) {
	svc, store, _ := newBookingFixture()

	cases := []struct {
		name   string
		mutate func(*BookingRequest)
		field  string
	}{
		{"missing name", func(r *BookingRequest) { r.CustomerName = " " }, "name"},
		{"missing email", func(r *BookingRequest) { r.CustomerEmail = "" }, "email"},
		{"missing technician", func(r *BookingRequest) { r.TechnicianID = 0 }, "technician_id"},
		{"missing service", func(r *BookingRequest) { r.Service = "" }, "service"},
		{"bad date", func(r *BookingRequest) { r.Date = "12/09/2026" }, "date"},
		{"missing time", func(r *BookingRequest) { r.Slot = "" }, "time"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBooking(1)
			tc.mutate(&req)

			_, err := svc.Book(context.Background(), req)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
	assert.Zero(t, store.creates, "rejected requests must not write")
}

func TestBookRequiresApproval(t *testing.T) {
	store := newFakeBookingStore()
	u := approvedUser(1)
	u.IsApproved = false
	users := &fakeUsers{users: map[uint64]model.User{1: u}}
	svc := NewBookingService(store, users, &fakeSlots{}, nil)

	_, err := svc.Book(context.Background(), validBooking(1))

	assert.ErrorIs(t, err, ErrNotApproved)
	assert.Zero(t, store.creates)
}

func TestBookRequiresSignedTerms(t *testing.T) {
	store := newFakeBookingStore()
	u := approvedUser(1)
	u.HasSignedTerms = false
	users := &fakeUsers{users: map[uint64]model.User{1: u}}
	svc := NewBookingService(store, users, &fakeSlots{}, nil)

	_, err := svc.Book(context.Background(), validBooking(1))

	assert.ErrorIs(t, err, ErrTermsNotSigned)
	assert.Zero(t, store.creates)
}

func TestBookRejectsUnpublishedSlot(t *testing.T) {
	svc, store, _ := newBookingFixture()
	req := validBooking(1)
	req.Slot = "8:00 PM" // not in the published list

	_, err := svc.Book(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Zero(t, store.creates)
}

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusPending, false},
		{model.StatusCompleted, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
		{model.StatusCancelled, model.StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestUpdateStatusEnforcesTable(t *testing.T) {
	svc, store, _ := newBookingFixture()
	a, err := svc.Book(context.Background(), validBooking(1))
	require.NoError(t, err)

	// PENDING -> COMPLETED skips confirmation and must be rejected.
	_, err = svc.UpdateStatus(context.Background(), a.ID, model.StatusCompleted, "Maribelle")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err := svc.UpdateStatus(context.Background(), a.ID, model.StatusConfirmed, "Maribelle")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, got.Status)

	// Terminal: cancelled appointments never come back.
	_, err = svc.UpdateStatus(context.Background(), a.ID, model.StatusCancelled, "Maribelle")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), a.ID, model.StatusConfirmed, "Maribelle")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, []uint64{a.ID}, store.releases, "cancellation frees the slot claim")
}

func TestUpdateStatusPublishesOnConfirm(t *testing.T) {
	store := newFakeBookingStore()
	users := &fakeUsers{users: map[uint64]model.User{1: approvedUser(1)}}
	slots := &fakeSlots{bookable: map[string]bool{slotKey(7, "2026-09-12", "2:00 PM"): true}}

	var published []queue.AppointmentConfirmedEvent
	svc := NewBookingService(store, users, slots, func(ctx context.Context, ev queue.AppointmentConfirmedEvent) error {
		published = append(published, ev)
		return nil
	})

	a, err := svc.Book(context.Background(), validBooking(1))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), a.ID, model.StatusConfirmed, "Maribelle")
	require.NoError(t, err)

	require.Len(t, published, 1)
	assert.Equal(t, a.ID, published[0].AppointmentID)
	assert.Equal(t, "Maribelle", published[0].TechnicianName)
	assert.Equal(t, "2:00 PM", published[0].Slot)
}

func TestUpdateStatusPublishFailureDoesNotFail(t *testing.T) {
	store := newFakeBookingStore()
	users := &fakeUsers{users: map[uint64]model.User{1: approvedUser(1)}}
	slots := &fakeSlots{bookable: map[string]bool{slotKey(7, "2026-09-12", "2:00 PM"): true}}
	svc := NewBookingService(store, users, slots, func(ctx context.Context, ev queue.AppointmentConfirmedEvent) error {
		return errors.New("broker down")
	})

	a, err := svc.Book(context.Background(), validBooking(1))
	require.NoError(t, err)

	got, err := svc.UpdateStatus(context.Background(), a.ID, model.StatusConfirmed, "Maribelle")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, got.Status)
}

func TestCancelFailureLeavesAppointmentCancellable(t *testing.T) {
	svc, store, _ := newBookingFixture()
	a, err := svc.Book(context.Background(), validBooking(1))
	require.NoError(t, err)

	// The release rides the same transaction as the status change, so
	// a failure must leave the appointment in its prior state instead
	// of committing a terminal CANCELLED with the claim still held.
	store.releaseErr = errors.New("deadlock")
	_, err = svc.UpdateStatus(context.Background(), a.ID, model.StatusCancelled, "Maribelle")
	require.Error(t, err)

	got, err := store.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status, "failed cancel must not commit the status")
	assert.Empty(t, store.releases)

	// Once the store recovers, the same cancel goes through and frees
	// the slot.
	store.releaseErr = nil
	got, err = svc.UpdateStatus(context.Background(), a.ID, model.StatusCancelled, "Maribelle")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, got.Status)
	assert.Equal(t, []uint64{a.ID}, store.releases)
}

func TestCancelOwn(t *testing.T) {
	svc, store, _ := newBookingFixture()
	a, err := svc.Book(context.Background(), validBooking(1))
	require.NoError(t, err)

	t.Run("other user forbidden", func(t *testing.T) {
		err := svc.CancelOwn(context.Background(), 99, a.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("owner cancels pending", func(t *testing.T) {
		require.NoError(t, svc.CancelOwn(context.Background(), 1, a.ID))
		got, err := store.GetByID(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, got.Status)
		assert.Contains(t, store.releases, a.ID)
	})

	t.Run("non-pending rejected", func(t *testing.T) {
		err := svc.CancelOwn(context.Background(), 1, a.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestDeleteReleasesClaim(t *testing.T) {
	svc, store, _ := newBookingFixture()
	a, err := svc.Book(context.Background(), validBooking(1))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), a.ID))
	assert.Equal(t, []uint64{a.ID}, store.deletes)

	assert.ErrorIs(t, svc.Delete(context.Background(), a.ID), sql.ErrNoRows)
}
