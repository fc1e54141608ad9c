package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinereserve/internal/model"
	"github.com/iliyamo/cinereserve/internal/queue"
	"github.com/iliyamo/cinereserve/internal/repository"
	"github.com/iliyamo/cinereserve/internal/service"
)

// BookingHandler serves customer reservations.
type BookingHandler struct {
	Catalog  *repository.CatalogRepo
	Bookings *repository.BookingRepo
	Events   *service.BookingEvents
}

// NewBookingHandler returns the reservation endpoints. Events may be a
// notifier over service.NopPublisher when the broker is disabled.
func NewBookingHandler(catalog *repository.CatalogRepo, bookings *repository.BookingRepo, events *service.BookingEvents) *BookingHandler {
	return &BookingHandler{Catalog: catalog, Bookings: bookings, Events: events}
}

type reserveReq struct {
	MovieID  string   `json:"movie_id" validate:"required"`
	Showtime string   `json:"showtime" validate:"required"`
	Seats    []string `json:"seats" validate:"dive,max=16"`
	Name     string   `json:"name" validate:"max=120"`
}

type bookingResp struct {
	ID         string          `json:"id"`
	MovieID    string          `json:"movie_id"`
	MovieTitle string          `json:"movie_title,omitempty"`
	Showtime   string          `json:"showtime"`
	Seats      []string        `json:"seats"`
	Name       string          `json:"name"`
	CreatedAt  model.Timestamp `json:"created_at"`
}

func toBookingResp(b model.Booking, title string) bookingResp {
	return bookingResp{
		ID:         b.ID,
		MovieID:    b.MovieID,
		MovieTitle: title,
		Showtime:   b.Showtime,
		Seats:      b.Seats,
		Name:       b.CustomerName,
		CreatedAt:  b.CreatedAt,
	}
}

// Reserve books every requested seat or none of them.
func (h *BookingHandler) Reserve(c echo.Context) error {
	var req reserveReq
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.Reserve(ctx, strings.TrimSpace(req.MovieID), strings.TrimSpace(req.Showtime), req.Seats, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	title := h.title(c, b.MovieID)
	h.Events.Confirmed(ctx, b, title)
	return c.JSON(http.StatusCreated, toBookingResp(b, title))
}

// Get returns a booking with its movie title, or "(removed movie)".
func (h *BookingHandler) Get(c echo.Context) error {
	d, err := h.Bookings.Get(c.Request().Context(), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(d.Booking, d.MovieTitle))
}

// Cancel frees the booking's seats and deletes it.
func (h *BookingHandler) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	b, err := h.Bookings.Cancel(ctx, param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	title := h.title(c, b.MovieID)
	h.Events.Cancelled(ctx, title, queue.ReasonCancelled, b)
	return c.JSON(http.StatusOK, toBookingResp(b, title))
}

func (h *BookingHandler) title(c echo.Context, movieID string) string {
	m, err := h.Catalog.Movie(c.Request().Context(), movieID)
	if err != nil {
		return model.RemovedMovieTitle
	}
	return m.Title
}
