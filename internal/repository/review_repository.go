package repository

import (
	"context"
	"database/sql"

	"github.com/maribelle/nail-studio-api/internal/model"
)

// ReviewRepo provides access to the `reviews` table and owns the
// running rating aggregate on the technician row. Creating a review
// and folding its rating into the aggregate happen in one
// transaction so the average can never drift from the review rows.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewColumns = `id, user_id, technician_id, customer_name, service, rating, comment, verified, created_at`

// Create inserts a review and updates the technician's running
// average in the same transaction:
//   new_avg = (avg*count + rating) / (count + 1)
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
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
	res, err := tx.ExecContext(ctx,
		`INSERT INTO reviews (user_id, technician_id, customer_name, service, rating, comment, verified)
		 VALUES (?,?,?,?,?,?,?)`,
		rev.UserID, rev.TechnicianID, rev.CustomerName, rev.Service, rev.Rating, rev.Comment, rev.Verified)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	if _, err := tx.ExecContext(ctx,
		`UPDATE technicians
		 SET rating_avg = (rating_avg * rating_count + ?) / (rating_count + 1),
			 rating_count = rating_count + 1
		 WHERE id=?`,
		rev.Rating, rev.TechnicianID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByTechnician returns a technician's reviews, newest first.
func (r *ReviewRepo) ListByTechnician(ctx context.Context, technicianID uint64) ([]model.Review, error) {
	return r.list(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE technician_id=? ORDER BY created_at DESC", technicianID)
}

// ListAll returns every review, newest first, for the public reviews
// page.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	return r.list(ctx,
		"SELECT "+reviewColumns+" FROM reviews ORDER BY created_at DESC")
}

// StatsByService computes the rating summary for one service name
// across all technicians. An empty service computes the site-wide
// summary.
func (r *ReviewRepo) StatsByService(ctx context.Context, service string) (model.ReviewStats, error) {
	query := "SELECT rating, COUNT(*) FROM reviews"
	args := []interface{}{}
	if service != "" {
		query += " WHERE service=?"
		args = append(args, service)
	}
	query += " GROUP BY rating"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return model.ReviewStats{}, err
	}
	defer rows.Close()
	stats := model.ReviewStats{Distribution: map[uint8]uint32{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var sum uint64
	for rows.Next() {
		var rating uint8
		var count uint32
		if err := rows.Scan(&rating, &count); err != nil {
			return model.ReviewStats{}, err
		}
		stats.Distribution[rating] = count
		stats.TotalReviews += count
		sum += uint64(rating) * uint64(count)
	}
	if err := rows.Err(); err != nil {
		return model.ReviewStats{}, err
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalReviews)
	}
	return stats, nil
}

func (r *ReviewRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.TechnicianID, &rev.CustomerName,
			&rev.Service, &rev.Rating, &rev.Comment, &rev.Verified, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
