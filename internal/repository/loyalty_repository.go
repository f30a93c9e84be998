package repository

import (
	"context"
	"database/sql"

	"github.com/maribelle/nail-studio-api/internal/model"
)

// LoyaltyRepo provides access to the `loyalty_accounts` table, one
// row per user. Accounts are created lazily on first read.
type LoyaltyRepo struct {
	db *sql.DB
}

// NewLoyaltyRepo returns a new LoyaltyRepo bound to the given database.
func NewLoyaltyRepo(db *sql.DB) *LoyaltyRepo { return &LoyaltyRepo{db: db} }

// GetOrCreate returns the user's loyalty account, inserting a fresh
// zero-balance Welcome-tier row when none exists yet.
func (r *LoyaltyRepo) GetOrCreate(ctx context.Context, userID uint64) (model.LoyaltyAccount, error) {
	acct, err := r.get(ctx, userID)
	if err == nil {
		return acct, nil
	}
	if err != sql.ErrNoRows {
		return model.LoyaltyAccount{}, err
	}
	// INSERT IGNORE keeps a concurrent first read harmless.
	if _, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO loyalty_accounts (user_id, points, total_spent_cents, appointments_completed, tier) VALUES (?,0,0,0,?)",
		userID, model.TierWelcome); err != nil {
		return model.LoyaltyAccount{}, err
	}
	return r.get(ctx, userID)
}

// Award credits points and spend to the account and stores the
// recomputed tier. Callers compute points and tier through the
// loyalty service.
func (r *LoyaltyRepo) Award(ctx context.Context, userID uint64, points int64, spentCents uint64, tier string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE loyalty_accounts
		 SET points = points + ?,
			 total_spent_cents = total_spent_cents + ?,
			 appointments_completed = appointments_completed + 1,
			 tier = ?,
			 updated_at = NOW()
		 WHERE user_id=?`,
		points, spentCents, tier, userID)
	return err
}

// Redeem deducts points when the balance covers them. The balance
// check sits in the WHERE clause so two concurrent redemptions cannot
// overdraw; an uncovered redemption reports ErrConflict.
func (r *LoyaltyRepo) Redeem(ctx context.Context, userID uint64, points int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE loyalty_accounts SET points = points - ?, updated_at = NOW() WHERE user_id=? AND points >= ?",
		points, userID, points)
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

func (r *LoyaltyRepo) get(ctx context.Context, userID uint64) (model.LoyaltyAccount, error) {
	var a model.LoyaltyAccount
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, points, total_spent_cents, appointments_completed, tier, updated_at
		 FROM loyalty_accounts WHERE user_id=? LIMIT 1`, userID).
		Scan(&a.UserID, &a.Points, &a.TotalSpentCents, &a.AppointmentsCompleted, &a.Tier, &a.UpdatedAt)
	return a, err
}
