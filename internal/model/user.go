package model

import "time"

// User represents an application user record as stored in the
// `users` table. New signups start on the waitlist: IsApproved is
// false until an admin flips it, and HasSignedTerms is false until
// the user signs the studio terms from their profile. Both flags are
// preconditions for booking.
//
// Fields:
//  ID             – primary key identifier of the user.
//  Email          – unique email address.
//  PasswordHash   – bcrypt hashed password.
//  DisplayName    – name shown on bookings and reviews.
//  Phone          – optional contact number.
//  Role           – role name (CUSTOMER, TECHNICIAN or ADMIN).
//  IsApproved     – waitlist approval flag set by an admin.
//  HasSignedTerms – whether the user signed the terms of service.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
	ID             uint64    // users.id
	Email          string    // users.email
	PasswordHash   string    // users.password_hash
	DisplayName    string    // users.display_name
	Phone          string    // users.phone
	Role           string    // users.role
	IsApproved     bool      // users.is_approved
	HasSignedTerms bool      // users.has_signed_terms
	CreatedAt      time.Time // users.created_at
	UpdatedAt      time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and carries expiry and revocation
// metadata. The plain token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
