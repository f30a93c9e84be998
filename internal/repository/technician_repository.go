package repository

import (
	"context"
	"database/sql"

	"github.com/maribelle/nail-studio-api/internal/model"
)

// TechnicianRepo provides access to technician profiles and their
// service menus. The rating_avg/rating_count columns are a running
// aggregate owned by the review repository; this repository only
// reads them.
type TechnicianRepo struct {
	db *sql.DB
}

// NewTechnicianRepo returns a new TechnicianRepo bound to the given database.
func NewTechnicianRepo(db *sql.DB) *TechnicianRepo { return &TechnicianRepo{db: db} }

const techColumns = `id, user_id, name, business_name, description, specialties,
			   phone, instagram, is_active, rating_avg, rating_count, joined_at`

// ListActive returns all active technicians ordered by name for the
// public listing.
func (r *TechnicianRepo) ListActive(ctx context.Context) ([]model.Technician, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+techColumns+" FROM technicians WHERE is_active=1 ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	techs := make([]model.Technician, 0)
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, err
		}
		techs = append(techs, t)
	}
	return techs, rows.Err()
}

// GetByID returns a single technician. sql.ErrNoRows when absent.
func (r *TechnicianRepo) GetByID(ctx context.Context, id uint64) (model.Technician, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+techColumns+" FROM technicians WHERE id=? LIMIT 1", id)
	var t model.Technician
	var userID sql.NullInt64
	err := row.Scan(&t.ID, &userID, &t.Name, &t.BusinessName, &t.Description, &t.Specialties,
		&t.Phone, &t.Instagram, &t.IsActive, &t.RatingAvg, &t.RatingCount, &t.JoinedAt)
	if err != nil {
		return model.Technician{}, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		t.UserID = &uid
	}
	return t, nil
}

// Create inserts a technician profile and returns its ID.
func (r *TechnicianRepo) Create(ctx context.Context, t *model.Technician) (uint64, error) {
	var userID interface{}
	if t.UserID != nil {
		userID = *t.UserID
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO technicians (user_id, name, business_name, description, specialties, phone, instagram, is_active)
		 VALUES (?,?,?,?,?,?,?,?)`,
		userID, t.Name, t.BusinessName, t.Description, t.Specialties, t.Phone, t.Instagram, t.IsActive)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	t.ID = uint64(id)
	return t.ID, nil
}

// Update overwrites the editable profile fields of a technician.
// sql.ErrNoRows when the technician does not exist.
func (r *TechnicianRepo) Update(ctx context.Context, t model.Technician) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE technicians SET name=?, business_name=?, description=?, specialties=?,
		 phone=?, instagram=?, is_active=? WHERE id=?`,
		t.Name, t.BusinessName, t.Description, t.Specialties, t.Phone, t.Instagram, t.IsActive, t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM technicians WHERE id=?)", t.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
	}
	return nil
}

// ListServices returns a technician's service menu ordered by
// category then price.
func (r *TechnicianRepo) ListServices(ctx context.Context, technicianID uint64) ([]model.Service, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, technician_id, name, price_cents, duration_min, category, tier
		 FROM technician_services WHERE technician_id=? ORDER BY category, price_cents`,
		technicianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	services := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.TechnicianID, &s.Name, &s.PriceCents,
			&s.DurationMin, &s.Category, &s.Tier); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// GetServiceByName looks up one service on a technician's menu by its
// exact name. Used by booking validation and loyalty awards to
// resolve prices.
func (r *TechnicianRepo) GetServiceByName(ctx context.Context, technicianID uint64, name string) (model.Service, error) {
	var s model.Service
	err := r.db.QueryRowContext(ctx,
		`SELECT id, technician_id, name, price_cents, duration_min, category, tier
		 FROM technician_services WHERE technician_id=? AND name=? LIMIT 1`,
		technicianID, name).Scan(&s.ID, &s.TechnicianID, &s.Name, &s.PriceCents,
		&s.DurationMin, &s.Category, &s.Tier)
	return s, err
}

// ReplaceServices swaps a technician's whole service menu inside one
// transaction. The menu is small (about ten rows) so delete-and-insert
// is simpler than diffing.
func (r *TechnicianRepo) ReplaceServices(ctx context.Context, technicianID uint64, services []model.Service) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM technician_services WHERE technician_id=?", technicianID); err != nil {
		return err
	}
	for _, s := range services {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO technician_services (technician_id, name, price_cents, duration_min, category, tier)
			 VALUES (?,?,?,?,?,?)`,
			technicianID, s.Name, s.PriceCents, s.DurationMin, s.Category, s.Tier); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func scanTechnician(rows *sql.Rows) (model.Technician, error) {
	var t model.Technician
	var userID sql.NullInt64
	err := rows.Scan(&t.ID, &userID, &t.Name, &t.BusinessName, &t.Description, &t.Specialties,
		&t.Phone, &t.Instagram, &t.IsActive, &t.RatingAvg, &t.RatingCount, &t.JoinedAt)
	if err != nil {
		return model.Technician{}, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		t.UserID = &uid
	}
	return t, nil
}
