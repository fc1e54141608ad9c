package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Noticer reports a one-time startup message, such as the corrupt-store
// recovery notice.
type Noticer interface {
	Notice() string
}

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems. It also surfaces the store's startup notice, if any.
func Health(store Noticer) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := echo.Map{"status": "ok"}
		if store != nil {
			if n := store.Notice(); n != "" {
				body["notice"] = n
			}
		}
		return c.JSON(http.StatusOK, body)
	}
}
