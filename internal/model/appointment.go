package model

import "time"

// Appointment status enumeration. Transitions are enforced by the
// booking service: PENDING may move to CONFIRMED or CANCELLED,
// CONFIRMED may move to COMPLETED or CANCELLED, and COMPLETED and
// CANCELLED are terminal.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Appointment records a customer's booking request for one slot on
// one date with one technician. The slot string is stored in the
// 12-hour display form; the date is an ISO YYYY-MM-DD calendar date
// with no time zone component.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – user who requested the appointment.
//  TechnicianID  – technician the appointment is with.
//  CustomerName  – name given on the booking form.
//  CustomerEmail – contact email given on the booking form.
//  CustomerPhone – optional contact number.
//  Service       – selected service name.
//  Date          – ISO calendar date string.
//  Slot          – time-of-day slot string (display form).
//  Notes         – free-text notes from the customer.
//  Status        – one of the Status* constants above.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Appointment struct {
	ID            uint64    // appointments.id
	UserID        uint64    // appointments.user_id
	TechnicianID  uint64    // appointments.technician_id
	CustomerName  string    // appointments.customer_name
	CustomerEmail string    // appointments.customer_email
	CustomerPhone string    // appointments.customer_phone
	Service       string    // appointments.service
	Date          string    // appointments.date (YYYY-MM-DD)
	Slot          string    // appointments.slot
	Notes         string    // appointments.notes
	Status        string    // appointments.status
	CreatedAt     time.Time // appointments.created_at
	UpdatedAt     time.Time // appointments.updated_at
}

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
