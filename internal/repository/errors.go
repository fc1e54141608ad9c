// Package repository owns the reservation store: the catalog of movies and
// showtimes, the bookings made against their seat maps and the identifier
// counters. The sentinel values below let the presentation layer tell the
// failure kinds apart with errors.Is.
package repository

import (
	"errors"

	"github.com/iliyamo/cinereserve/internal/model"
	"github.com/iliyamo/cinereserve/internal/storage"
)

// ErrNotFound is returned when a referenced movie, showtime or booking does
// not exist. Handlers translate it into 404.
var ErrNotFound = errors.New("not found")

// ErrEmptyTitle is returned when a movie is added with a blank title.
var ErrEmptyTitle = errors.New("title cannot be empty")

// ErrEmptyShowtime is returned when a showtime label is blank.
var ErrEmptyShowtime = errors.New("showtime cannot be empty")

// ErrEmptySelection is returned when a reservation names no seats.
var ErrEmptySelection = errors.New("no seats selected")

// ErrDuplicateShowtime is returned when a label already exists for a movie.
var ErrDuplicateShowtime = errors.New("showtime already exists")

// Seat-level failures are reported by the seat map itself.
var (
	ErrInvalidSeat     = model.ErrInvalidSeat
	ErrSeatUnavailable = model.ErrSeatUnavailable
	ErrInvalidLayout   = model.ErrInvalidLayout
)

// ErrCorruptStore marks a persisted snapshot that cannot be used. Open
// downgrades it to a freshly seeded store.
var ErrCorruptStore = storage.ErrCorrupt
