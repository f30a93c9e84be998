package model

import "time"

// Technician is a nail technician profile as stored in the
// `technicians` table. The rating columns hold a running aggregate
// maintained by the review repository: RatingAvg is the mean of all
// review ratings and RatingCount the number of reviews folded in.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – the user account backing this profile (nullable for
//                 the seeded default technician).
//  Name         – display name of the technician.
//  BusinessName – studio or brand name shown to customers.
//  Description  – free-text blurb for the public listing.
//  Specialties  – comma-separated specialty tags.
//  Phone        – contact number.
//  Instagram    – optional handle.
//  IsActive     – whether the technician appears in public listings.
//  RatingAvg    – running average review rating (0 when unreviewed).
//  RatingCount  – number of reviews aggregated into RatingAvg.
//  JoinedAt     – when the profile was created.
type Technician struct {
	ID           uint64    // technicians.id
	UserID       *uint64   // technicians.user_id (nullable)
	Name         string    // technicians.name
	BusinessName string    // technicians.business_name
	Description  string    // technicians.description
	Specialties  string    // technicians.specialties
	Phone        string    // technicians.phone
	Instagram    string    // technicians.instagram
	IsActive     bool      // technicians.is_active
	RatingAvg    float64   // technicians.rating_avg
	RatingCount  uint32    // technicians.rating_count
	JoinedAt     time.Time // technicians.joined_at
}

// Service is one bookable service offered by a technician, a row in
// the `technician_services` table.
type Service struct {
	ID           uint64 // technician_services.id
	TechnicianID uint64 // technician_services.technician_id
	Name         string // technician_services.name
	PriceCents   uint32 // technician_services.price_cents
	DurationMin  uint32 // technician_services.duration_min
	Category     string // technician_services.category (Design, GELX, Other)
	Tier         uint8  // technician_services.tier (0 when untiered)
}
