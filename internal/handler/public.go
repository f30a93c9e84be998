package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/model"
	"github.com/maribelle/nail-studio-api/internal/repository"
	"github.com/maribelle/nail-studio-api/internal/service"
)

// PublicHandler serves the unauthenticated browse surface: the
// technician directory, published availability and review feeds.
type PublicHandler struct {
	Technicians  *repository.TechnicianRepo
	Availability *service.AvailabilityService
	Reviews      *repository.ReviewRepo
}

func NewPublicHandler(t *repository.TechnicianRepo, a *service.AvailabilityService, r *repository.ReviewRepo) *PublicHandler {
	return &PublicHandler{Technicians: t, Availability: a, Reviews: r}
}

// ----- DTOs -----

type technicianResp struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	BusinessName string  `json:"business_name"`
	Description  string  `json:"description,omitempty"`
	Specialties  string  `json:"specialties,omitempty"`
	Instagram    string  `json:"instagram,omitempty"`
	RatingAvg    float64 `json:"rating_avg"`
	RatingCount  uint32  `json:"rating_count"`
}

type serviceResp struct {
	Name        string `json:"name"`
	PriceCents  uint32 `json:"price_cents"`
	DurationMin uint32 `json:"duration_min"`
	Category    string `json:"category"`
	Tier        uint8  `json:"tier,omitempty"`
}

func toTechnicianResp(t model.Technician) technicianResp {
	return technicianResp{
		ID: t.ID, Name: t.Name, BusinessName: t.BusinessName,
		Description: t.Description, Specialties: t.Specialties, Instagram: t.Instagram,
		RatingAvg: t.RatingAvg, RatingCount: t.RatingCount,
	}
}

// ListTechnicians returns all active technicians.
func (h *PublicHandler) ListTechnicians(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	ts, err := h.Technicians.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]technicianResp, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTechnicianResp(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"technicians": out})
}

// GetTechnician returns one technician's profile with their service menu.
func (h *PublicHandler) GetTechnician(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t, err := h.Technicians.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "technician not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	svcs, err := h.Technicians.ListServices(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	menu := make([]serviceResp, 0, len(svcs))
	for _, s := range svcs {
		menu = append(menu, serviceResp{
			Name: s.Name, PriceCents: s.PriceCents, DurationMin: s.DurationMin,
			Category: s.Category, Tier: s.Tier,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"technician": toTechnicianResp(t),
		"services":   menu,
	})
}

// Slots returns the published times for a technician on one date. An
// unpublished date reads as an empty list, not an error.
func (h *PublicHandler) Slots(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	slots, err := h.Availability.Slots(ctx, id, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "slots": slots})
}

// Calendar returns published availability for a date range, keyed by
// date. Dates with no published slots are omitted.
func (h *PublicHandler) Calendar(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	start, end := c.QueryParam("start"), c.QueryParam("end")
	if !validRange(start, end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start/end must be YYYY-MM-DD, start <= end, spanning at most 62 days"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cal, err := h.Availability.Calendar(ctx, id, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"availability": cal})
}

type reviewResp struct {
	ID           uint64    `json:"id"`
	TechnicianID uint64    `json:"technician_id"`
	CustomerName string    `json:"customer_name"`
	Service      string    `json:"service"`
	Rating       uint8     `json:"rating"`
	Comment      string    `json:"comment"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}

func toReviewList(rs []model.Review) []reviewResp {
	out := make([]reviewResp, 0, len(rs))
	for _, r := range rs {
		out = append(out, reviewResp{
			ID: r.ID, TechnicianID: r.TechnicianID, CustomerName: r.CustomerName,
			Service: r.Service, Rating: r.Rating, Comment: r.Comment,
			Verified: r.Verified, CreatedAt: r.CreatedAt,
		})
	}
	return out
}

// TechnicianReviews lists reviews for one technician, newest first.
func (h *PublicHandler) TechnicianReviews(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rs, err := h.Reviews.ListByTechnician(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": toReviewList(rs)})
}

// ListReviews lists all reviews across the studio.
func (h *PublicHandler) ListReviews(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rs, err := h.Reviews.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": toReviewList(rs)})
}

// ServiceStats returns the rating average and distribution for one
// service name across all technicians.
func (h *PublicHandler) ServiceStats(c echo.Context) error {
	name := c.QueryParam("service")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	stats, err := h.Reviews.StatsByService(ctx, name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, stats)
}

// maxCalendarDays caps a calendar query at roughly two months. The
// booking client never asks for more, and the range feeds a per-day
// query loop that should not scale with attacker-chosen input.
const maxCalendarDays = 62

// validRange checks a start/end date pair and its span.
func validRange(start, end string) bool {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return false
	}
	if e.Before(s) {
		return false
	}
	return e.Sub(s) < maxCalendarDays*24*time.Hour
}
