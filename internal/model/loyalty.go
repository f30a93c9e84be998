package model

import "time"

// Loyalty tier names in ascending order of the points required to
// reach them. Thresholds and per-tier discounts live in the loyalty
// service.
const (
	TierWelcome  = "Welcome"
	TierBronze   = "Bronze"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

// LoyaltyAccount is one user's loyalty balance, a row in the
// `loyalty_accounts` table keyed by user id. Points only move
// through explicit admin awards and customer redemptions; nothing
// is credited automatically when an appointment completes.
type LoyaltyAccount struct {
	UserID                uint64    // loyalty_accounts.user_id
	Points                int64     // loyalty_accounts.points
	TotalSpentCents       uint64    // loyalty_accounts.total_spent_cents
	AppointmentsCompleted uint32    // loyalty_accounts.appointments_completed
	Tier                  string    // loyalty_accounts.tier
	UpdatedAt             time.Time // loyalty_accounts.updated_at
}
