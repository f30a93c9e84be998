package repository

import (
	"context"
	"database/sql"

	"github.com/maribelle/nail-studio-api/internal/model"
)

// AppointmentRepo provides CRUD operations for appointments. Status
// transition rules live in the booking service; this layer only
// guards against concurrent writers by checking the current status in
// the UPDATE's WHERE clause.
type AppointmentRepo struct {
	db *sql.DB
}

// NewAppointmentRepo returns a new AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

// DB exposes the underlying handle for cross-repository transactions.
func (r *AppointmentRepo) DB() *sql.DB { return r.db }

const apptColumns = `id, user_id, technician_id, customer_name, customer_email, customer_phone,
			   service, date, slot, notes, status, created_at, updated_at`

// CreateTx inserts a new appointment within the scope of an existing
// transaction and populates the generated ID on the record. The
// caller must commit or roll back. Status should already be set;
// bookings always start as PENDING.
func (r *AppointmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Appointment) error {
	const q = `INSERT INTO appointments
			   (user_id, technician_id, customer_name, customer_email, customer_phone, service, date, slot, notes, status)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		a.UserID, a.TechnicianID, a.CustomerName, a.CustomerEmail, a.CustomerPhone,
		a.Service, a.Date, a.Slot, a.Notes, a.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	// Query back the row to populate the DB-generated timestamps.
	return tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM appointments WHERE id=?", a.ID).
		Scan(&a.CreatedAt, &a.UpdatedAt)
}

// GetByID returns a single appointment. sql.ErrNoRows when absent.
func (r *AppointmentRepo) GetByID(ctx context.Context, id uint64) (model.Appointment, error) {
	var a model.Appointment
	err := r.db.QueryRowContext(ctx,
		"SELECT "+apptColumns+" FROM appointments WHERE id=? LIMIT 1", id).Scan(
		&a.ID, &a.UserID, &a.TechnicianID, &a.CustomerName, &a.CustomerEmail, &a.CustomerPhone,
		&a.Service, &a.Date, &a.Slot, &a.Notes, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// ListAll returns every appointment, newest request first, for the
// admin dashboard.
func (r *AppointmentRepo) ListAll(ctx context.Context) ([]model.Appointment, error) {
	return r.list(ctx,
		"SELECT "+apptColumns+" FROM appointments ORDER BY created_at DESC")
}

// ListByUser returns a customer's own appointments, newest first.
func (r *AppointmentRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Appointment, error) {
	return r.list(ctx,
		"SELECT "+apptColumns+" FROM appointments WHERE user_id=? ORDER BY created_at DESC", userID)
}

// ListByTechnician returns a technician's appointments, newest first.
func (r *AppointmentRepo) ListByTechnician(ctx context.Context, technicianID uint64) ([]model.Appointment, error) {
	return r.list(ctx,
		"SELECT "+apptColumns+" FROM appointments WHERE technician_id=? ORDER BY created_at DESC", technicianID)
}

// UpdateStatus moves an appointment from fromStatus to toStatus. The
// compare-and-set WHERE clause means a concurrent transition loses
// cleanly: zero rows affected reports ErrConflict and the caller
// re-reads. The transition table itself is enforced by the booking
// service before this is called.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id uint64, fromStatus, toStatus string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE appointments SET status=?, updated_at=NOW() WHERE id=? AND status=?",
		toStatus, id, fromStatus)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// UpdateStatusTx is UpdateStatus within an existing transaction, for
// callers that pair the status change with another write.
func (r *AppointmentRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, fromStatus, toStatus string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE appointments SET status=?, updated_at=NOW() WHERE id=? AND status=?",
		toStatus, id, fromStatus)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// DeleteTx hard-deletes an appointment within a transaction so the
// caller can release its slot claim in the same unit of work.
// Deleting an absent appointment reports sql.ErrNoRows.
func (r *AppointmentRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM appointments WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// HasCompletedAppointment reports whether the user has at least one
// COMPLETED appointment with the technician. Used to mark reviews as
// verified.
func (r *AppointmentRepo) HasCompletedAppointment(ctx context.Context, userID, technicianID uint64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM appointments WHERE user_id=? AND technician_id=? AND status=?)",
		userID, technicianID, model.StatusCompleted).Scan(&exists)
	return exists, err
}

func (r *AppointmentRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	appts := make([]model.Appointment, 0)
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.TechnicianID, &a.CustomerName, &a.CustomerEmail, &a.CustomerPhone,
			&a.Service, &a.Date, &a.Slot, &a.Notes, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}
