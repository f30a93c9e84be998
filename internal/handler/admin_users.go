package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/repository"
)

// AdminUserHandler serves the waitlist queue.
type AdminUserHandler struct {
	Users *repository.UserRepo
}

func NewAdminUserHandler(u *repository.UserRepo) *AdminUserHandler {
	return &AdminUserHandler{Users: u}
}

type pendingUserResp struct {
	ID          uint64    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Pending lists unapproved customer accounts, oldest first.
func (h *AdminUserHandler) Pending(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	us, err := h.Users.ListPending(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]pendingUserResp, 0, len(us))
	for _, u := range us {
		out = append(out, pendingUserResp{
			ID: u.ID, Email: u.Email, DisplayName: u.DisplayName,
			Phone: u.Phone, CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"pending": out})
}

type approveReq struct {
	Approved bool `json:"approved"`
}

// SetApproval approves or revokes a waitlisted account. Revoking an
// approved account blocks future bookings but leaves existing ones.
func (h *AdminUserHandler) SetApproval(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.SetApproval(ctx, id, req.Approved); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if req.Approved {
		return c.JSON(http.StatusOK, echo.Map{"message": "user approved"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "approval revoked"})
}
