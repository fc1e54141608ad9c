package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinereserve/internal/handler"
)

// RegisterCustomer registers booking endpoints under /v1/bookings. There are
// no customer accounts, so these routes are unauthenticated: a booking id is
// all a customer needs to look up or cancel a reservation.
func RegisterCustomer(e *echo.Echo, h *handler.BookingHandler) {
	g := e.Group("/v1/bookings")
	g.POST("", h.Reserve)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Cancel)
}
