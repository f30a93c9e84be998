package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/repository"
	"github.com/maribelle/nail-studio-api/internal/service"
)

// AccountHandler serves the authenticated customer's own profile,
// terms acceptance and loyalty balance.
type AccountHandler struct {
	Users   *repository.UserRepo
	Loyalty *service.LoyaltyService
}

func NewAccountHandler(u *repository.UserRepo, l *service.LoyaltyService) *AccountHandler {
	return &AccountHandler{Users: u, Loyalty: l}
}

type profileResp struct {
	ID             uint64 `json:"id"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	Phone          string `json:"phone"`
	Role           string `json:"role"`
	IsApproved     bool   `json:"is_approved"`
	HasSignedTerms bool   `json:"has_signed_terms"`
}

// Me returns the current user's profile and approval state.
func (h *AccountHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, profileResp{
		ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Phone: u.Phone,
		Role: u.Role, IsApproved: u.IsApproved, HasSignedTerms: u.HasSignedTerms,
	})
}

// SignTerms records acceptance of the studio terms. Signing is a
// precondition for booking and is idempotent.
func (h *AccountHandler) SignTerms(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.SignTerms(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "terms signed"})
}

type loyaltyResp struct {
	Points                int64  `json:"points"`
	Tier                  string `json:"tier"`
	DiscountPercent       uint8  `json:"discount_percent"`
	TotalSpentCents       uint64 `json:"total_spent_cents"`
	AppointmentsCompleted uint32 `json:"appointments_completed"`
}

// LoyaltyAccount returns the caller's points balance and tier. An
// account row is created lazily on first read.
func (h *AccountHandler) LoyaltyAccount(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	acct, err := h.Loyalty.Account(ctx, uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, loyaltyResp{
		Points:                acct.Points,
		Tier:                  acct.Tier,
		DiscountPercent:       service.TierDiscountPercent(acct.Tier),
		TotalSpentCents:       acct.TotalSpentCents,
		AppointmentsCompleted: acct.AppointmentsCompleted,
	})
}

type redeemReq struct {
	Points int64 `json:"points"`
}

// RedeemPoints deducts points from the caller's balance. Redeeming more
// than the balance is rejected atomically.
func (h *AccountHandler) RedeemPoints(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req redeemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Loyalty.Redeem(ctx, uid, req.Points); err != nil {
		return writeServiceError(c, err)
	}
	acct, err := h.Loyalty.Account(ctx, uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, loyaltyResp{
		Points:                acct.Points,
		Tier:                  acct.Tier,
		DiscountPercent:       service.TierDiscountPercent(acct.Tier),
		TotalSpentCents:       acct.TotalSpentCents,
		AppointmentsCompleted: acct.AppointmentsCompleted,
	})
}
