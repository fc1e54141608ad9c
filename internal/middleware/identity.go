package middleware

// identity.go holds helpers shared across middleware files.

import "github.com/labstack/echo/v4"

// subject returns the token subject stored by JWTAuth, or "anon" for
// requests that did not pass through it.
func subject(c echo.Context) string {
	if s, ok := c.Get(CtxSubject).(string); ok && s != "" {
		return s
	}
	return "anon"
}
