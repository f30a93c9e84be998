package model

import "time"

// Review is one customer review of a technician, a row in the
// `reviews` table. Rating is constrained to 1..5. Verified is set
// when the reviewer has a COMPLETED appointment with the technician
// at submission time.
type Review struct {
	ID           uint64    // reviews.id
	UserID       uint64    // reviews.user_id
	TechnicianID uint64    // reviews.technician_id
	CustomerName string    // reviews.customer_name
	Service      string    // reviews.service
	Rating       uint8     // reviews.rating (1-5)
	Comment      string    // reviews.comment
	Verified     bool      // reviews.verified
	CreatedAt    time.Time // reviews.created_at
}

// ReviewStats summarizes the ratings of a set of reviews. The
// distribution maps a star value (1..5) to the number of reviews
// with that rating.
type ReviewStats struct {
	AverageRating float64        `json:"average_rating"`
	TotalReviews  uint32         `json:"total_reviews"`
	Distribution  map[uint8]uint32 `json:"rating_distribution"`
}
