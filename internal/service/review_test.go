package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maribelle/nail-studio-api/internal/model"
)

type fakeReviewStore struct {
	created []model.Review
}

func (f *fakeReviewStore) Create(ctx context.Context, rev *model.Review) error {
	rev.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, *rev)
	return nil
}

type fakeCompletion struct {
	completed map[uint64]bool // by technician ID
}

func (f *fakeCompletion) HasCompletedAppointment(ctx context.Context, userID, technicianID uint64) (bool, error) {
	return f.completed[technicianID], nil
}

func validReview() ReviewRequest {
	return ReviewRequest{
		UserID:       1,
		TechnicianID: 7,
		CustomerName: "Dana",
		Service:      "Gel Manicure",
		Rating:       5,
		Comment:      "Best set I've ever had.",
	}
}

func TestSubmitReview(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store, &fakeCompletion{completed: map[uint64]bool{7: true}})

	rev, err := svc.Submit(context.Background(), validReview())

	require.NoError(t, err)
	assert.True(t, rev.Verified, "completed appointment marks the review verified")
	assert.EqualValues(t, 5, rev.Rating)
	require.Len(t, store.created, 1)
}

func TestSubmitReviewUnverified(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store, &fakeCompletion{completed: map[uint64]bool{}})

	rev, err := svc.Submit(context.Background(), validReview())

	require.NoError(t, err)
	assert.False(t, rev.Verified, "no completed appointment, review still lands but unverified")
	require.Len(t, store.created, 1)
}

func TestSubmitReviewValidation(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store, &fakeCompletion{completed: map[uint64]bool{7: true}})

	cases := []struct {
		name   string
		mutate func(*ReviewRequest)
		field  string
	}{
		{"rating zero", func(r *ReviewRequest) { r.Rating = 0 }, "rating"},
		{"rating too high", func(r *ReviewRequest) { r.Rating = 6 }, "rating"},
		{"missing technician", func(r *ReviewRequest) { r.TechnicianID = 0 }, "technician_id"},
		{"missing service", func(r *ReviewRequest) { r.Service = "" }, "service"},
		{"blank comment", func(r *ReviewRequest) { r.Comment = "   " }, "comment"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validReview()
			tc.mutate(&req)

			_, err := svc.Submit(context.Background(), req)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
	assert.Empty(t, store.created)
}

func TestSubmitReviewTrimsFields(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store, &fakeCompletion{completed: map[uint64]bool{7: true}})
	req := validReview()
	req.CustomerName = "  Dana  "
	req.Comment = "  lovely work  "

	rev, err := svc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Dana", rev.CustomerName)
	assert.Equal(t, "lovely work", rev.Comment)
}
