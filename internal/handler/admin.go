package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinereserve/internal/config"
	"github.com/iliyamo/cinereserve/internal/model"
	"github.com/iliyamo/cinereserve/internal/queue"
	"github.com/iliyamo/cinereserve/internal/repository"
	"github.com/iliyamo/cinereserve/internal/service"
	"github.com/iliyamo/cinereserve/internal/utils"
)

// AdminHandler bundles the admin gate and catalog management endpoints.
// SecretHash is the bcrypt hash of the configured admin secret.
type AdminHandler struct {
	Cfg        config.Config
	SecretHash string
	Catalog    *repository.CatalogRepo
	Bookings   *repository.BookingRepo
	Events     *service.BookingEvents
	Log        *zap.Logger
}

// NewAdminHandler wires the admin endpoints. A nil log discards output.
func NewAdminHandler(cfg config.Config, secretHash string, catalog *repository.CatalogRepo, bookings *repository.BookingRepo, events *service.BookingEvents, log *zap.Logger) *AdminHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{Cfg: cfg, SecretHash: secretHash, Catalog: catalog, Bookings: bookings, Events: events, Log: log}
}

// ----- DTOs -----

type loginReq struct {
	Secret string `json:"secret" validate:"required"`
}

type loginResp struct {
	Token   string `json:"token"`
	Expires string `json:"expires"`
}

type addMovieReq struct {
	Title string `json:"title" validate:"required,max=200"`
}

type addShowtimeReq struct {
	Label string `json:"label" validate:"required,max=64"`
	Rows  int    `json:"rows" validate:"gte=0"`
	Cols  int    `json:"cols" validate:"gte=0"`
}

type removedResp struct {
	Removed           string   `json:"removed"`
	CancelledBookings []string `json:"cancelled_bookings"`
}

// Login checks the admin secret and issues a short-lived ADMIN token.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if !utils.VerifySecret(h.SecretHash, req.Secret) {
		h.Log.Warn("admin login rejected", zap.String("ip", c.RealIP()))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid secret"})
	}
	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, "admin", utils.RoleAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, loginResp{Token: tok.Token, Expires: tok.Exp.Format(time.RFC3339)})
}

// ListMovies mirrors the public listing for the admin console.
func (h *AdminHandler) ListMovies(c echo.Context) error {
	items, err := h.Catalog.ListMovies(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// AddMovie creates a movie without showtimes and returns its id (201).
// A blank title is rejected with 400.
func (h *AdminHandler) AddMovie(c echo.Context) error {
	var req addMovieReq
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	id, err := h.Catalog.AddMovie(c.Request().Context(), req.Title)
	if err != nil {
		return writeError(c, err)
	}
	h.Log.Info("movie added", zap.String("movie_id", id))
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// RemoveMovie deletes the movie and cancels every booking for it.
func (h *AdminHandler) RemoveMovie(c echo.Context) error {
	ctx := c.Request().Context()
	id := param(c, "id")
	m, err := h.Catalog.Movie(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	cancelled, err := h.Catalog.RemoveMovie(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	h.Events.Cancelled(ctx, m.Title, queue.ReasonMovieRemoved, cancelled...)
	h.Log.Info("movie removed", zap.String("movie_id", id), zap.Int("cancelled", len(cancelled)))
	return c.JSON(http.StatusOK, removedResp{Removed: id, CancelledBookings: bookingIDs(cancelled)})
}

// AddShowtime attaches a fresh seat grid to a movie. Zero rows or cols use
// the configured default layout; an existing label answers 409.
func (h *AdminHandler) AddShowtime(c echo.Context) error {
	var req addShowtimeReq
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	movieID := param(c, "id")
	sm, err := h.Catalog.AddShowtime(c.Request().Context(), movieID, req.Label, req.Rows, req.Cols)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"movie_id": movieID,
		"label":    strings.TrimSpace(req.Label),
		"rows":     sm.Rows,
		"cols":     sm.Cols,
	})
}

// RemoveShowtime deletes one showtime and cancels its bookings.
func (h *AdminHandler) RemoveShowtime(c echo.Context) error {
	ctx := c.Request().Context()
	movieID, label := param(c, "id"), param(c, "label")
	m, err := h.Catalog.Movie(ctx, movieID)
	if err != nil {
		return writeError(c, err)
	}
	cancelled, err := h.Catalog.RemoveShowtime(ctx, movieID, label)
	if err != nil {
		return writeError(c, err)
	}
	h.Events.Cancelled(ctx, m.Title, queue.ReasonShowtimeRemoved, cancelled...)
	h.Log.Info("showtime removed", zap.String("movie_id", movieID), zap.String("label", label), zap.Int("cancelled", len(cancelled)))
	return c.JSON(http.StatusOK, removedResp{Removed: label, CancelledBookings: bookingIDs(cancelled)})
}

// ListBookings returns every booking ordered by id.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	items, err := h.Bookings.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]bookingResp, 0, len(items))
	for _, b := range items {
		out = append(out, toBookingResp(b, ""))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

func bookingIDs(bs []model.Booking) []string {
	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.ID)
	}
	return ids
}
