package model

import "time"

// Availability is the published slot set for one technician on one
// calendar date, a row in the `availability` table keyed by
// (technician_id, date). Slots are semantically a set: the schedule
// package guarantees no two entries denote the same time. Version is
// bumped on every save and drives the optimistic-concurrency check in
// the repository, so two admins editing the same date cannot silently
// overwrite each other's merge.
type Availability struct {
	TechnicianID uint64    // availability.technician_id
	Date         string    // availability.date (YYYY-MM-DD)
	Slots        []string  // decoded from availability.slots JSON
	Version      uint64    // availability.version
	UpdatedAt    time.Time // availability.updated_at
}

// SlotClaim marks one slot on one date as taken by an appointment.
// The table carries UNIQUE(technician_id, date, slot_key) so inserting
// a claim is the atomic "book this slot if nobody else has" step.
// SlotKey is the canonical 24-hour form of the slot string.
type SlotClaim struct {
	ID            uint64    // slot_claims.id
	TechnicianID  uint64    // slot_claims.technician_id
	Date          string    // slot_claims.date
	SlotKey       string    // slot_claims.slot_key (HH:MM)
	AppointmentID uint64    // slot_claims.appointment_id
	CreatedAt     time.Time // slot_claims.created_at
}
