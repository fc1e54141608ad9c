// Package handler exposes the HTTP surface of the reservation manager. The
// public handlers in this file are read-only views of the catalog.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinereserve/internal/model"
	"github.com/iliyamo/cinereserve/internal/repository"
)

// CatalogHandler serves unauthenticated catalog browsing.
type CatalogHandler struct {
	Catalog *repository.CatalogRepo
}

// NewCatalogHandler returns the public catalog endpoints.
func NewCatalogHandler(catalog *repository.CatalogRepo) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

// movieResp is the public movie view.
type movieResp struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Showtimes []string `json:"showtimes"`
}

// seatResp is one cell of the seat map view.
type seatResp struct {
	Code   string `json:"code"`
	Booked bool   `json:"booked"`
}

type seatMapResp struct {
	MovieID   string       `json:"movie_id"`
	Showtime  string       `json:"showtime"`
	Rows      int          `json:"rows"`
	Cols      int          `json:"cols"`
	Available int          `json:"available"`
	Grid      [][]seatResp `json:"grid"`
}

// ListMovies returns every movie ordered by id.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	items, err := h.Catalog.ListMovies(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetMovie returns a movie with its sorted showtime labels.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	m, err := h.Catalog.Movie(c.Request().Context(), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, movieResp{ID: m.ID, Title: m.Title, Showtimes: m.Labels()})
}

// ListShowtimes returns the showtime labels of one movie.
func (h *CatalogHandler) ListShowtimes(c echo.Context) error {
	labels, err := h.Catalog.ListShowtimes(c.Request().Context(), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": labels})
}

// SeatMap renders the seat grid row by row. Booking ids are never exposed
// on the public view.
func (h *CatalogHandler) SeatMap(c echo.Context) error {
	movieID, label := param(c, "id"), param(c, "label")
	sm, err := h.Catalog.SeatMap(c.Request().Context(), movieID, label)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, buildSeatMapResp(movieID, label, sm))
}

func buildSeatMapResp(movieID, label string, sm model.SeatMap) seatMapResp {
	grid := make([][]seatResp, 0, sm.Rows)
	var row []seatResp
	cur := -1
	for _, code := range sm.Codes() {
		r, _, _ := model.SplitSeatCode(code)
		if r != cur {
			if row != nil {
				grid = append(grid, row)
			}
			row = make([]seatResp, 0, sm.Cols)
			cur = r
		}
		row = append(row, seatResp{Code: code, Booked: sm.Seats[code].Booked})
	}
	if row != nil {
		grid = append(grid, row)
	}
	return seatMapResp{
		MovieID:   movieID,
		Showtime:  label,
		Rows:      sm.Rows,
		Cols:      sm.Cols,
		Available: sm.Available(),
		Grid:      grid,
	}
}
