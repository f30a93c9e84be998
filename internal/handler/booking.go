package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/model"
	"github.com/maribelle/nail-studio-api/internal/repository"
	"github.com/maribelle/nail-studio-api/internal/service"
)

// BookingHandler serves customer-facing appointment endpoints.
type BookingHandler struct {
	Bookings     *service.BookingService
	Appointments *repository.AppointmentRepo
	Reviews      *service.ReviewService
}

func NewBookingHandler(b *service.BookingService, a *repository.AppointmentRepo, r *service.ReviewService) *BookingHandler {
	return &BookingHandler{Bookings: b, Appointments: a, Reviews: r}
}

// ----- DTOs -----

type bookReq struct {
	TechnicianID  uint64 `json:"technician_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Service       string `json:"service"`
	Date          string `json:"date"`
	Slot          string `json:"slot"`
	Notes         string `json:"notes"`
}

type apptResp struct {
	ID            uint64    `json:"id"`
	TechnicianID  uint64    `json:"technician_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Service       string    `json:"service"`
	Date          string    `json:"date"`
	Slot          string    `json:"slot"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toApptResp(a model.Appointment) apptResp {
	return apptResp{
		ID: a.ID, TechnicianID: a.TechnicianID,
		CustomerName: a.CustomerName, CustomerEmail: a.CustomerEmail, CustomerPhone: a.CustomerPhone,
		Service: a.Service, Date: a.Date, Slot: a.Slot, Notes: a.Notes,
		Status: a.Status, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func toApptList(as []model.Appointment) []apptResp {
	out := make([]apptResp, 0, len(as))
	for _, a := range as {
		out = append(out, toApptResp(a))
	}
	return out
}

// Create books a PENDING appointment for the authenticated customer.
// The account must be approved and have signed terms, and the slot must
// be published for the technician on that date.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Bookings.Book(ctx, service.BookingRequest{
		UserID:        uid,
		TechnicianID:  req.TechnicianID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Service:       req.Service,
		Date:          req.Date,
		Slot:          req.Slot,
		Notes:         req.Notes,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toApptResp(a))
}

// Mine lists the caller's own appointments, newest first.
func (h *BookingHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	as, err := h.Appointments.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"appointments": toApptList(as)})
}

// Cancel cancels one of the caller's own PENDING appointments and
// releases its slot claim.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Bookings.CancelOwn(ctx, uid, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "appointment cancelled"})
}

type reviewReq struct {
	TechnicianID uint64 `json:"technician_id"`
	CustomerName string `json:"customer_name"`
	Service      string `json:"service"`
	Rating       uint8  `json:"rating"`
	Comment      string `json:"comment"`
}

// SubmitReview records a rating for a technician. The review is marked
// verified when the caller has a completed appointment with them.
func (h *BookingHandler) SubmitReview(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rev, err := h.Reviews.Submit(ctx, service.ReviewRequest{
		UserID:       uid,
		TechnicianID: req.TechnicianID,
		CustomerName: req.CustomerName,
		Service:      req.Service,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       rev.ID,
		"rating":   rev.Rating,
		"verified": rev.Verified,
	})
}
