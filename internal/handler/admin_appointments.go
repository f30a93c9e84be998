package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/model"
	"github.com/maribelle/nail-studio-api/internal/repository"
	"github.com/maribelle/nail-studio-api/internal/service"
)

// AdminAppointmentHandler serves the dashboard appointment views and
// the status workflow. All routes are behind RequireRole("ADMIN").
type AdminAppointmentHandler struct {
	Bookings     *service.BookingService
	Appointments *repository.AppointmentRepo
	Technicians  *repository.TechnicianRepo
	Loyalty      *service.LoyaltyService
}

func NewAdminAppointmentHandler(b *service.BookingService, a *repository.AppointmentRepo, t *repository.TechnicianRepo, l *service.LoyaltyService) *AdminAppointmentHandler {
	return &AdminAppointmentHandler{Bookings: b, Appointments: a, Technicians: t, Loyalty: l}
}

// List returns every appointment, newest first. An optional
// technician_id query narrows to one technician.
func (h *AdminAppointmentHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		as  []model.Appointment
		err error
	)
	if tid, ok := pathQueryID(c, "technician_id"); ok {
		as, err = h.Appointments.ListByTechnician(ctx, tid)
	} else {
		as, err = h.Appointments.ListAll(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"appointments": toApptList(as)})
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves an appointment through the workflow. Only the
// allowed transitions go through: PENDING to CONFIRMED or CANCELLED,
// CONFIRMED to COMPLETED or CANCELLED. Confirming publishes a
// notification event; cancelling frees the slot claim.
func (h *AdminAppointmentHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Resolve the technician name once for the confirmation event.
	techName := ""
	if a, err := h.Appointments.GetByID(ctx, id); err == nil {
		if t, err := h.Technicians.GetByID(ctx, a.TechnicianID); err == nil {
			techName = t.Name
		}
	}

	a, err := h.Bookings.UpdateStatus(ctx, id, status, techName)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toApptResp(a))
}

// Delete removes an appointment entirely and releases its slot claim.
// The workflow prefers CANCELLED; delete exists for bad data.
func (h *AdminAppointmentHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Bookings.Delete(ctx, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "appointment deleted"})
}

type awardReq struct {
	PriceCents uint32 `json:"price_cents"` // optional override
}

// AwardPoints credits loyalty points for a completed appointment. The
// price comes from the technician's service menu; the body may carry a
// price_cents override for custom work not on the menu.
func (h *AdminAppointmentHandler) AwardPoints(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req awardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	price := req.PriceCents
	if price == 0 {
		a, err := h.Appointments.GetByID(ctx, id)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		svc, err := h.Technicians.GetServiceByName(ctx, a.TechnicianID, a.Service)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "service not on menu, pass price_cents"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		price = svc.PriceCents
	}

	awarded, err := h.Loyalty.AwardForAppointment(ctx, id, price)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"points_awarded": awarded})
}

// pathQueryID parses an optional numeric query parameter.
func pathQueryID(c echo.Context, name string) (uint64, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
