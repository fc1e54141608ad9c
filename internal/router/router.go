package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/cinereserve/internal/handler" // handlers that implement each endpoint
)

// RegisterRoutes registers routes that do not require authentication and are
// never cached. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, store handler.Noticer) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health(store))
}

// RegisterPublic registers the read-only catalog endpoints. The optional
// middlewares (typically the response cache) wrap only these routes.
func RegisterPublic(e *echo.Echo, h *handler.CatalogHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1/movies", mw...)
	g.GET("", h.ListMovies)
	g.GET("/:id", h.GetMovie)
	g.GET("/:id/showtimes", h.ListShowtimes)
	// Labels are path-escaped by clients, e.g. "Fri%207pm".
	g.GET("/:id/showtimes/:label/seats", h.SeatMap)
}
