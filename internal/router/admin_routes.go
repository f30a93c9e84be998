package router

import (
	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/handler"
	"github.com/maribelle/nail-studio-api/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin. All
// routes require a valid JWT carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, aa *handler.AdminAppointmentHandler, av *handler.AdminAvailabilityHandler, au *handler.AdminUserHandler, at *handler.AdminTechnicianHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Appointments ----
	g.GET("/appointments", aa.List)
	g.PATCH("/appointments/:id/status", aa.UpdateStatus)
	g.DELETE("/appointments/:id", aa.Delete)
	g.POST("/appointments/:id/award-points", aa.AwardPoints)

	// ---- Availability ----
	g.GET("/technicians/:id/availability", av.Calendar)
	g.PUT("/technicians/:id/availability", av.Replace)
	g.POST("/technicians/:id/availability", av.Add)
	g.DELETE("/technicians/:id/availability", av.Delete)

	// ---- Waitlist ----
	g.GET("/users", au.Pending)
	g.PATCH("/users/:id/approval", au.SetApproval)

	// ---- Technicians ----
	g.POST("/technicians", at.Create)
	g.PUT("/technicians/:id", at.Update)
	g.PUT("/technicians/:id/services", at.ReplaceServices)
}
