package service

import (
	"context"
	"strings"

	"github.com/maribelle/nail-studio-api/internal/model"
)

// ReviewStore persists reviews and maintains the technician rating
// aggregate.
type ReviewStore interface {
	Create(ctx context.Context, rev *model.Review) error
}

// CompletionChecker reports whether a user has a completed
// appointment with a technician. It drives the verified flag.
type CompletionChecker interface {
	HasCompletedAppointment(ctx context.Context, userID, technicianID uint64) (bool, error)
}

// ReviewRequest carries the review submission form.
type ReviewRequest struct {
	UserID       uint64
	TechnicianID uint64
	CustomerName string
	Service      string
	Rating       uint8
	Comment      string
}

// ReviewService validates and writes reviews.
type ReviewService struct {
	store    ReviewStore
	verifier CompletionChecker
}

// NewReviewService constructs a ReviewService.
func NewReviewService(store ReviewStore, verifier CompletionChecker) *ReviewService {
	return &ReviewService{store: store, verifier: verifier}
}

// Submit validates the form and writes the review. Verified is set
// when the reviewer actually completed an appointment with the
// technician; unverified reviews are still accepted and displayed as
// such.
func (s *ReviewService) Submit(ctx context.Context, req ReviewRequest) (model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return model.Review{}, &ValidationError{Field: "rating", Msg: "must be between 1 and 5"}
	}
	if req.TechnicianID == 0 {
		return model.Review{}, &ValidationError{Field: "technician_id", Msg: "required"}
	}
	if strings.TrimSpace(req.Service) == "" {
		return model.Review{}, &ValidationError{Field: "service", Msg: "required"}
	}
	if strings.TrimSpace(req.Comment) == "" {
		return model.Review{}, &ValidationError{Field: "comment", Msg: "required"}
	}
	verified, err := s.verifier.HasCompletedAppointment(ctx, req.UserID, req.TechnicianID)
	if err != nil {
		return model.Review{}, err
	}
	rev := model.Review{
		UserID:       req.UserID,
		TechnicianID: req.TechnicianID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Service:      req.Service,
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
		Verified:     verified,
	}
	if err := s.store.Create(ctx, &rev); err != nil {
		return model.Review{}, err
	}
	return rev, nil
}
