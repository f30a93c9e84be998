package router // defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/handler"
	"github.com/maribelle/nail-studio-api/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
// Currently it exposes only a health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Unauthenticated
// operations live under /v1/auth; logout requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limit != nil {
		g.Use(limit)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret))
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// technician directory, published availability and review feeds. The
// optional cache middleware serves repeated reads from Redis.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/technicians", p.ListTechnicians)
	g.GET("/technicians/:id", p.GetTechnician)
	g.GET("/technicians/:id/slots", p.Slots)
	g.GET("/technicians/:id/availability", p.Calendar)
	g.GET("/technicians/:id/reviews", p.TechnicianReviews)
	g.GET("/reviews", p.ListReviews)
	g.GET("/reviews/stats", p.ServiceStats)
}
