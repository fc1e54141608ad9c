package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinereserve/internal/handler"
	"github.com/iliyamo/cinereserve/internal/middleware"
	"github.com/iliyamo/cinereserve/internal/utils"
)

// RegisterAdmin registers the admin gate and the catalog management routes.
// Everything except login requires a valid JWT carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	e.POST("/v1/admin/login", h.Login)

	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleAdmin),
	)

	// ---- Movies ----
	g.GET("/movies", h.ListMovies)
	g.POST("/movies", h.AddMovie)
	g.DELETE("/movies/:id", h.RemoveMovie)

	// ---- Showtimes ----
	g.POST("/movies/:id/showtimes", h.AddShowtime)
	g.DELETE("/movies/:id/showtimes/:label", h.RemoveShowtime)

	// ---- Bookings ----
	g.GET("/bookings", h.ListBookings)
}
