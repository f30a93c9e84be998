package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/service"
)

// AdminAvailabilityHandler manages a technician's published calendar.
type AdminAvailabilityHandler struct {
	Availability *service.AvailabilityService
}

func NewAdminAvailabilityHandler(a *service.AvailabilityService) *AdminAvailabilityHandler {
	return &AdminAvailabilityHandler{Availability: a}
}

type slotsReq struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// Replace overwrites the slot list for one date. The stored list is
// normalized to 12-hour display form, deduplicated and sorted.
func (h *AdminAvailabilityHandler) Replace(c echo.Context) error {
	tid, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req slotsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	slots, err := h.Availability.ReplaceSlots(ctx, tid, req.Date, req.Slots)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"date": req.Date, "slots": slots})
}

// Add merges new slots into the existing list for a date. Duplicate
// times (in either clock form) collapse to one entry.
func (h *AdminAvailabilityHandler) Add(c echo.Context) error {
	tid, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req slotsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if len(req.Slots) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slots required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	slots, err := h.Availability.AddSlots(ctx, tid, req.Date, req.Slots)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"date": req.Date, "slots": slots})
}

// Delete unpublishes a date entirely.
func (h *AdminAvailabilityHandler) Delete(c echo.Context) error {
	tid, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Availability.Delete(ctx, tid, date); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "availability removed"})
}

// Calendar returns the published range for dashboard editing, same
// shape as the public endpoint.
func (h *AdminAvailabilityHandler) Calendar(c echo.Context) error {
	tid, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	start, end := c.QueryParam("start"), c.QueryParam("end")
	if !validRange(start, end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start/end must be YYYY-MM-DD, start <= end, spanning at most 62 days"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cal, err := h.Availability.Calendar(ctx, tid, start, end)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"availability": cal})
}
