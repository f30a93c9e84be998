package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists refresh-token hashes. Only the SHA-256 hash of a
// token ever reaches this table, so a leaked database dump cannot be
// replayed against the refresh endpoint. Revocation is soft: rows keep
// their revoked_at timestamp instead of being deleted, which leaves an
// audit trail of past sessions.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh records a newly issued refresh token hash with its expiry.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return err
}

// ValidateRefresh resolves a token hash to its user. Expired and revoked
// tokens are filtered in SQL, so every miss surfaces uniformly as
// sql.ErrNoRows and the caller cannot distinguish "never issued" from
// "no longer valid".
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var userID uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id FROM refresh_tokens
		 WHERE token_hash=? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()
		 LIMIT 1`,
		tokenHash).Scan(&userID)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// RevokeByHash revokes a single token, used on logout and on refresh
// rotation so the old token cannot be replayed.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	return r.revokeWhere(ctx, "token_hash=?", tokenHash)
}

// RevokeAllForUser revokes every active session for a user at once.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	return r.revokeWhere(ctx, "user_id=?", userID)
}

func (r *TokenRepo) revokeWhere(ctx context.Context, cond string, arg any) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE "+cond+" AND revoked_at IS NULL",
		arg)
	return err
}
