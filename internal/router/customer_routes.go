package router

import (
	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/handler"
	"github.com/maribelle/nail-studio-api/internal/middleware"
)

// RegisterCustomer registers the endpoints available to any signed-in
// account: profile, terms, booking, reviews and loyalty. Admin writes
// on appointments are enforced server-side; role checks never depend
// on what a client UI chooses to render.
func RegisterCustomer(e *echo.Echo, ah *handler.AccountHandler, bh *handler.BookingHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "ADMIN"),
	)

	// ---- Account ----
	g.GET("/me", ah.Me)
	g.POST("/me/terms", ah.SignTerms)
	g.GET("/me/loyalty", ah.LoyaltyAccount)
	g.POST("/me/loyalty/redeem", ah.RedeemPoints)

	// ---- Appointments ----
	if limit != nil {
		g.POST("/appointments", bh.Create, limit)
	} else {
		g.POST("/appointments", bh.Create)
	}
	g.GET("/my-appointments", bh.Mine)
	g.DELETE("/appointments/:id", bh.Cancel)

	// ---- Reviews ----
	g.POST("/reviews", bh.SubmitReview)
}
