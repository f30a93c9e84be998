package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/maribelle/nail-studio-api/internal/model"
	"github.com/maribelle/nail-studio-api/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const userColumns = "id,email,password_hash,display_name,phone,role,is_approved,has_signed_terms,created_at,updated_at"

// Create inserts a user and returns its ID. New users land on the
// waitlist: is_approved and has_signed_terms both default to false in
// the schema.
func (r *UserRepo) Create(ctx context.Context, email, password, displayName, phone, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, display_name, phone, role) VALUES (?,?,?,?,?)",
		email, hash, displayName, phone, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// SetApproval flips the waitlist approval flag for a user. It returns
// sql.ErrNoRows when the user does not exist.
func (r *UserRepo) SetApproval(ctx context.Context, id uint64, approved bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_approved=?, updated_at=NOW() WHERE id=?", approved, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such user" from "flag already in that state".
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM users WHERE id=?)", id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
	}
	return nil
}

// SignTerms records that the user accepted the studio terms of
// service. Signing twice is a no-op.
func (r *UserRepo) SignTerms(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET has_signed_terms=1, updated_at=NOW() WHERE id=?", id)
	return err
}

// ListPending returns users still waiting for waitlist approval,
// oldest signup first, for the admin approval queue.
func (r *UserRepo) ListPending(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE is_approved=0 AND role='CUSTOMER' ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Phone,
			&u.Role, &u.IsApproved, &u.HasSignedTerms, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Phone,
		&u.Role, &u.IsApproved, &u.HasSignedTerms, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
