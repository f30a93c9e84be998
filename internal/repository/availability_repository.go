package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"
)

// AvailabilityRepo provides access to the `availability` table, which
// holds one row per (technician_id, date) with the published slot set
// encoded as a JSON array, and to the `slot_claims` table used to
// mark individual slots as booked.
//
// The repository never merges slot sets. Callers pre-merge through
// the schedule package and save the exact sequence they want stored;
// a save is always a full overwrite of the row's slots. The version
// column provides optimistic concurrency: SaveSlots only applies when
// the row still carries the version the caller read, so two admins
// editing the same date cannot lose each other's merge.
type AvailabilityRepo struct {
	db *sql.DB
}

// NewAvailabilityRepo returns a new AvailabilityRepo bound to the given database.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// that span availability claims and appointment writes.
func (r *AvailabilityRepo) DB() *sql.DB { return r.db }

// GetSlots returns the slot list and row version for a date. A date
// with no saved record is a valid, non-error state: it yields an
// empty list and version 0.
func (r *AvailabilityRepo) GetSlots(ctx context.Context, technicianID uint64, date string) ([]string, uint64, error) {
	var (
		raw     string
		version uint64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT slots, version FROM availability WHERE technician_id=? AND date=? LIMIT 1",
		technicianID, date).Scan(&raw, &version)
	if err == sql.ErrNoRows {
		return []string{}, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	slots, err := decodeSlots(raw)
	if err != nil {
		return nil, 0, err
	}
	return slots, version, nil
}

// SaveSlots overwrites the stored slot list for a date with exactly
// the given sequence. expectVersion must be the version returned by
// the preceding GetSlots: 0 inserts a fresh row, anything else
// updates in place and fails with ErrVersionConflict when the row
// changed since it was read.
func (r *AvailabilityRepo) SaveSlots(ctx context.Context, technicianID uint64, date string, slots []string, expectVersion uint64) error {
	raw, err := encodeSlots(slots)
	if err != nil {
		return err
	}
	if expectVersion == 0 {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO availability (technician_id, date, slots, version) VALUES (?,?,?,1)",
			technicianID, date, raw)
		if err != nil {
			// A concurrent writer inserted the row first.
			if strings.Contains(strings.ToLower(err.Error()), "1062") {
				return ErrVersionConflict
			}
			return err
		}
		return nil
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE availability SET slots=?, version=version+1, updated_at=NOW() WHERE technician_id=? AND date=? AND version=?",
		raw, technicianID, date, expectVersion)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}

// DeleteSlots removes the whole-date record. Deleting an absent date
// is not an error.
func (r *AvailabilityRepo) DeleteSlots(ctx context.Context, technicianID uint64, date string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM availability WHERE technician_id=? AND date=?",
		technicianID, date)
	return err
}

// GetSlotsForRange returns a date -> slots mapping for every date in
// [startDate, endDate] that has a saved record. It issues one lookup
// per date; calendar views bound the range to about two months, but
// this is still O(days) round trips and the first place to optimize
// if ranges ever grow.
func (r *AvailabilityRepo) GetSlotsForRange(ctx context.Context, technicianID uint64, startDate, endDate string) (map[string][]string, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		slots, _, err := r.GetSlots(ctx, technicianID, date)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			out[date] = slots
		}
	}
	return out, nil
}

// ClaimSlotTx inserts a slot claim within the provided transaction.
// The unique key on (technician_id, date, slot_key) makes this the
// atomic "book this slot if nobody else has" step: a duplicate insert
// reports ErrSlotTaken and the caller rolls the booking back.
func (r *AvailabilityRepo) ClaimSlotTx(ctx context.Context, tx *sql.Tx, technicianID uint64, date, slotKey string, appointmentID uint64) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO slot_claims (technician_id, date, slot_key, appointment_id) VALUES (?,?,?,?)",
		technicianID, date, slotKey, appointmentID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrSlotTaken
	}
	return err
}

// ReleaseClaimTx removes the claim held by an appointment within an
// existing transaction, freeing the slot for rebooking. Releasing an
// appointment with no claim is a no-op. Releases always ride the
// transaction of the status change or delete that triggered them.
func (r *AvailabilityRepo) ReleaseClaimTx(ctx context.Context, tx *sql.Tx, appointmentID uint64) error {
	_, err := tx.ExecContext(ctx,
		"DELETE FROM slot_claims WHERE appointment_id=?", appointmentID)
	return err
}

func encodeSlots(slots []string) (string, error) {
	if slots == nil {
		slots = []string{}
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeSlots(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}
