package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinereserve/internal/model"
	"github.com/iliyamo/cinereserve/internal/repository"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator ready to be set on echo.Echo.
func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate runs the struct tags of i.
func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateShowtime),
		errors.Is(err, repository.ErrSeatUnavailable):
		return http.StatusConflict
	case errors.Is(err, repository.ErrEmptyTitle),
		errors.Is(err, repository.ErrEmptyShowtime),
		errors.Is(err, repository.ErrEmptySelection),
		errors.Is(err, repository.ErrInvalidLayout),
		errors.Is(err, repository.ErrInvalidSeat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error": ..., "seats": [...]}. Seat errors carry
// the offending codes.
func writeError(c echo.Context, err error) error {
	status := errorStatus(err)
	body := echo.Map{"error": err.Error()}
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		body["error"] = "internal error"
	}
	var se *model.SeatError
	if errors.As(err, &se) {
		body["seats"] = se.Codes
	}
	return c.JSON(status, body)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// bindValid binds the body into req and runs struct validation.
func bindValid(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

// param returns a path parameter as the client meant it. Echo routes on
// URL.RawPath when the request carries escapes that Path cannot represent
// (an encoded "/" for instance) and then hands back the raw segment; only
// that case needs decoding. Otherwise the value is already decoded once.
func param(c echo.Context, name string) string {
	v := c.Param(name)
	if c.Request().URL.RawPath != "" {
		if dec, err := url.PathUnescape(v); err == nil {
			v = dec
		}
	}
	return strings.TrimSpace(v)
}
