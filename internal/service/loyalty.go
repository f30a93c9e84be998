package service

import (
	"context"

	"github.com/maribelle/nail-studio-api/internal/model"
)

// Loyalty point arithmetic. Customers earn ten points per dollar of
// service price plus a flat completion bonus; tiers unlock at fixed
// point thresholds and map to a percentage discount.
const (
	centsPerPoint   = 10
	completionBonus = 50
)

// PointsFromPrice returns the points earned for a service price in
// cents: one point per ten cents, so fractional dollars count too.
// A $45.50 service earns 455 points.
func PointsFromPrice(priceCents uint32) int64 {
	return int64(priceCents / centsPerPoint)
}

// CompletionBonus returns the flat bonus for completing an appointment.
func CompletionBonus() int64 { return completionBonus }

// TierForPoints maps a lifetime point balance to the tier it unlocks.
func TierForPoints(points int64) string {
	switch {
	case points >= 1000:
		return model.TierPlatinum
	case points >= 500:
		return model.TierGold
	case points >= 250:
		return model.TierSilver
	case points >= 100:
		return model.TierBronze
	default:
		return model.TierWelcome
	}
}

// TierDiscountPercent returns the discount a tier grants.
func TierDiscountPercent(tier string) uint8 {
	switch tier {
	case model.TierBronze:
		return 5
	case model.TierSilver:
		return 10
	case model.TierGold:
		return 15
	case model.TierPlatinum:
		return 20
	default:
		return 0
	}
}

// LoyaltyStore is the slice of the loyalty repository the service
// needs. Redeem reports repository.ErrConflict when the balance does
// not cover the deduction.
type LoyaltyStore interface {
	GetOrCreate(ctx context.Context, userID uint64) (model.LoyaltyAccount, error)
	Award(ctx context.Context, userID uint64, points int64, spentCents uint64, tier string) error
	Redeem(ctx context.Context, userID uint64, points int64) error
}

// AppointmentGetter loads one appointment for award validation.
type AppointmentGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Appointment, error)
}

// LoyaltyService awards and redeems points. Awarding is an explicit
// admin action against a completed appointment, never an automatic
// side effect of the status change.
type LoyaltyService struct {
	store LoyaltyStore
	appts AppointmentGetter
}

// NewLoyaltyService constructs a LoyaltyService.
func NewLoyaltyService(store LoyaltyStore, appts AppointmentGetter) *LoyaltyService {
	return &LoyaltyService{store: store, appts: appts}
}

// Account returns the user's loyalty account, creating it on first use.
func (s *LoyaltyService) Account(ctx context.Context, userID uint64) (model.LoyaltyAccount, error) {
	return s.store.GetOrCreate(ctx, userID)
}

// AwardForAppointment credits the points for a completed appointment:
// price-derived points plus the completion bonus. The tier is
// recomputed from the post-award balance. Returns the points awarded.
func (s *LoyaltyService) AwardForAppointment(ctx context.Context, appointmentID uint64, priceCents uint32) (int64, error) {
	a, err := s.appts.GetByID(ctx, appointmentID)
	if err != nil {
		return 0, err
	}
	if a.Status != model.StatusCompleted {
		return 0, ErrNotCompleted
	}
	acct, err := s.store.GetOrCreate(ctx, a.UserID)
	if err != nil {
		return 0, err
	}
	award := PointsFromPrice(priceCents) + CompletionBonus()
	tier := TierForPoints(acct.Points + award)
	if err := s.store.Award(ctx, a.UserID, award, uint64(priceCents), tier); err != nil {
		return 0, err
	}
	return award, nil
}

// Redeem deducts points from the user's balance. A redemption larger
// than the balance reports ErrInsufficientPoints and changes nothing.
func (s *LoyaltyService) Redeem(ctx context.Context, userID uint64, points int64) error {
	if points <= 0 {
		return &ValidationError{Field: "points", Msg: "must be positive"}
	}
	// Make sure the account row exists so the conditional UPDATE can
	// distinguish "no balance" from "no account".
	if _, err := s.store.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	if err := s.store.Redeem(ctx, userID, points); err != nil {
		if isConflict(err) {
			return ErrInsufficientPoints
		}
		return err
	}
	return nil
}
