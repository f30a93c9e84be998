package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maribelle/nail-studio-api/internal/model"
	"github.com/maribelle/nail-studio-api/internal/repository"
)

type fakeLoyaltyStore struct {
	accounts map[uint64]model.LoyaltyAccount
}

func newFakeLoyaltyStore() *fakeLoyaltyStore {
	return &fakeLoyaltyStore{accounts: map[uint64]model.LoyaltyAccount{}}
}

func (f *fakeLoyaltyStore) GetOrCreate(ctx context.Context, userID uint64) (model.LoyaltyAccount, error) {
	if a, ok := f.accounts[userID]; ok {
		return a, nil
	}
	a := model.LoyaltyAccount{UserID: userID, Tier: model.TierWelcome}
	f.accounts[userID] = a
	return a, nil
}

func (f *fakeLoyaltyStore) Award(ctx context.Context, userID uint64, points int64, spentCents uint64, tier string) error {
	a := f.accounts[userID]
	a.Points += points
	a.TotalSpentCents += spentCents
	a.AppointmentsCompleted++
	a.Tier = tier
	f.accounts[userID] = a
	return nil
}

func (f *fakeLoyaltyStore) Redeem(ctx context.Context, userID uint64, points int64) error {
	a := f.accounts[userID]
	if a.Points < points {
		return repository.ErrConflict
	}
	a.Points -= points
	f.accounts[userID] = a
	return nil
}

type fakeAppts struct {
	appts map[uint64]model.Appointment
}

func (f *fakeAppts) GetByID(ctx context.Context, id uint64) (model.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return model.Appointment{}, sql.ErrNoRows
	}
	return a, nil
}

func TestPointsFromPrice(t *testing.T) {
	cases := []struct {
		cents uint32
		want  int64
	}{
		{0, 0},
		{9, 0},      // below a dime earns nothing
		{99, 9},     // fractional dollars still count
		{100, 10},   // $1 -> 10 pts
		{4550, 455}, // $45.50 -> 455 pts
		{12000, 1200},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PointsFromPrice(tc.cents), "price %d", tc.cents)
	}
}

func TestTierForPoints(t *testing.T) {
	cases := []struct {
		points int64
		want   string
	}{
		{0, model.TierWelcome},
		{99, model.TierWelcome},
		{100, model.TierBronze},
		{249, model.TierBronze},
		{250, model.TierSilver},
		{500, model.TierGold},
		{999, model.TierGold},
		{1000, model.TierPlatinum},
		{5000, model.TierPlatinum},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierForPoints(tc.points), "points %d", tc.points)
	}
}

func TestTierDiscountPercent(t *testing.T) {
	assert.EqualValues(t, 0, TierDiscountPercent(model.TierWelcome))
	assert.EqualValues(t, 5, TierDiscountPercent(model.TierBronze))
	assert.EqualValues(t, 10, TierDiscountPercent(model.TierSilver))
	assert.EqualValues(t, 15, TierDiscountPercent(model.TierGold))
	assert.EqualValues(t, 20, TierDiscountPercent(model.TierPlatinum))
	assert.EqualValues(t, 0, TierDiscountPercent("unknown"))
}

func newLoyaltyFixture(status string) (*LoyaltyService, *fakeLoyaltyStore) {
	store := newFakeLoyaltyStore()
	appts := &fakeAppts{appts: map[uint64]model.Appointment{
		42: {ID: 42, UserID: 1, TechnicianID: 7, Service: "Gel Manicure", Status: status},
	}}
	return NewLoyaltyService(store, appts), store
}

func TestAwardForAppointment(t *testing.T) {
	svc, store := newLoyaltyFixture(model.StatusCompleted)

	// $45 service: 450 points plus the 50-point completion bonus.
	awarded, err := svc.AwardForAppointment(context.Background(), 42, 4500)

	require.NoError(t, err)
	assert.EqualValues(t, 500, awarded)

	acct := store.accounts[1]
	assert.EqualValues(t, 500, acct.Points)
	assert.EqualValues(t, 4500, acct.TotalSpentCents)
	assert.Equal(t, model.TierGold, acct.Tier, "tier reflects the post-award balance")
}

func TestAwardRequiresCompletedStatus(t *testing.T) {
	for _, status := range []string{model.StatusPending, model.StatusConfirmed, model.StatusCancelled} {
		svc, store := newLoyaltyFixture(status)

		_, err := svc.AwardForAppointment(context.Background(), 42, 4500)

		assert.ErrorIs(t, err, ErrNotCompleted, status)
		assert.Empty(t, store.accounts, "no account row on rejected award")
	}
}

func TestAwardUnknownAppointment(t *testing.T) {
	svc, _ := newLoyaltyFixture(model.StatusCompleted)

	_, err := svc.AwardForAppointment(context.Background(), 999, 4500)

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRedeem(t *testing.T) {
	svc, store := newLoyaltyFixture(model.StatusCompleted)
	_, err := svc.AwardForAppointment(context.Background(), 42, 4500) // 500 pts
	require.NoError(t, err)

	t.Run("non-positive rejected", func(t *testing.T) {
		var ve *ValidationError
		assert.ErrorAs(t, svc.Redeem(context.Background(), 1, 0), &ve)
		assert.ErrorAs(t, svc.Redeem(context.Background(), 1, -50), &ve)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		err := svc.Redeem(context.Background(), 1, 501)
		assert.ErrorIs(t, err, ErrInsufficientPoints)
		assert.EqualValues(t, 500, store.accounts[1].Points, "failed redeem changes nothing")
	})

	t.Run("deducts", func(t *testing.T) {
		require.NoError(t, svc.Redeem(context.Background(), 1, 300))
		assert.EqualValues(t, 200, store.accounts[1].Points)
	})

	t.Run("fresh user has empty account", func(t *testing.T) {
		err := svc.Redeem(context.Background(), 2, 10)
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})
}
