package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/iliyamo/cinereserve/internal/model"
)

// CatalogRepo manages movies and their showtimes. Removing either cascades
// to the bookings that depend on it.
type CatalogRepo struct {
	store *Store
}

// NewCatalogRepo constructs a CatalogRepo over store.
func NewCatalogRepo(store *Store) *CatalogRepo {
	if store == nil {
		panic("nil store passed to NewCatalogRepo")
	}
	return &CatalogRepo{store: store}
}

// AddMovie creates a movie with no showtimes and returns its id.
func (r *CatalogRepo) AddMovie(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	var id string
	err := r.store.update(ctx, func(st *model.Snapshot) error {
		id = nextMovieID(st)
		st.Movies[id] = model.Movie{ID: id, Title: title, Showtimes: map[string]model.SeatMap{}}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// RemoveMovie deletes a movie together with every booking made for any of
// its showtimes. It returns the removed bookings.
func (r *CatalogRepo) RemoveMovie(ctx context.Context, movieID string) ([]model.Booking, error) {
	var removed []model.Booking
	err := r.store.update(ctx, func(st *model.Snapshot) error {
		if _, ok := st.Movies[movieID]; !ok {
			return fmt.Errorf("%w: movie %s", ErrNotFound, movieID)
		}
		removed = removeBookings(st, func(b model.Booking) bool { return b.MovieID == movieID })
		delete(st.Movies, movieID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// AddShowtime attaches a fresh seat map under label. Non-positive rows or
// cols fall back to the store defaults.
func (r *CatalogRepo) AddShowtime(ctx context.Context, movieID, label string, rows, cols int) (model.SeatMap, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.SeatMap{}, ErrEmptyShowtime
	}
	if rows <= 0 {
		rows = r.store.rows
	}
	if cols <= 0 {
		cols = r.store.cols
	}
	var out model.SeatMap
	err := r.store.update(ctx, func(st *model.Snapshot) error {
		m, ok := st.Movies[movieID]
		if !ok {
			return fmt.Errorf("%w: movie %s", ErrNotFound, movieID)
		}
		if _, dup := m.Showtimes[label]; dup {
			return fmt.Errorf("%w: %s @ %q", ErrDuplicateShowtime, movieID, label)
		}
		sm, err := model.NewSeatMap(rows, cols)
		if err != nil {
			return err
		}
		m.Showtimes[label] = sm
		out = sm.Clone()
		return nil
	})
	if err != nil {
		return model.SeatMap{}, err
	}
	return out, nil
}

// RemoveShowtime deletes the bookings of one showtime and then the showtime
// itself. It returns the removed bookings.
func (r *CatalogRepo) RemoveShowtime(ctx context.Context, movieID, label string) ([]model.Booking, error) {
	var removed []model.Booking
	err := r.store.update(ctx, func(st *model.Snapshot) error {
		m, ok := st.Movies[movieID]
		if !ok {
			return fmt.Errorf("%w: movie %s", ErrNotFound, movieID)
		}
		if _, ok := m.Showtimes[label]; !ok {
			return fmt.Errorf("%w: showtime %q of %s", ErrNotFound, label, movieID)
		}
		removed = removeBookings(st, func(b model.Booking) bool {
			return b.MovieID == movieID && b.Showtime == label
		})
		delete(m.Showtimes, label)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ListMovies returns every movie ordered by id.
func (r *CatalogRepo) ListMovies(ctx context.Context) ([]model.MovieSummary, error) {
	var out []model.MovieSummary
	err := r.store.view(func(st *model.Snapshot) error {
		out = make([]model.MovieSummary, 0, len(st.Movies))
		for id, m := range st.Movies {
			out = append(out, model.MovieSummary{ID: id, Title: m.Title, Showtimes: len(m.Showtimes)})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return lessID(out[i].ID, out[j].ID, model.ParseMovieID) })
	return out, err
}

// ListShowtimes returns the labels of a movie's showtimes in lexical order.
func (r *CatalogRepo) ListShowtimes(ctx context.Context, movieID string) ([]string, error) {
	var out []string
	err := r.store.view(func(st *model.Snapshot) error {
		m, ok := st.Movies[movieID]
		if !ok {
			return fmt.Errorf("%w: movie %s", ErrNotFound, movieID)
		}
		out = m.Labels()
		return nil
	})
	return out, err
}

// Movie returns a copy of one movie including its seat maps.
func (r *CatalogRepo) Movie(ctx context.Context, movieID string) (model.Movie, error) {
	var out model.Movie
	err := r.store.view(func(st *model.Snapshot) error {
		m, ok := st.Movies[movieID]
		if !ok {
			return fmt.Errorf("%w: movie %s", ErrNotFound, movieID)
		}
		out = m.Clone()
		return nil
	})
	return out, err
}

// SeatMap returns a copy of the seat map of one showtime.
func (r *CatalogRepo) SeatMap(ctx context.Context, movieID, label string) (model.SeatMap, error) {
	var out model.SeatMap
	err := r.store.view(func(st *model.Snapshot) error {
		sm, err := lookupSeatMap(st, movieID, label)
		if err != nil {
			return err
		}
		out = sm.Clone()
		return nil
	})
	return out, err
}

func lookupSeatMap(st *model.Snapshot, movieID, label string) (model.SeatMap, error) {
	m, ok := st.Movies[movieID]
	if !ok {
		return model.SeatMap{}, fmt.Errorf("%w: movie %s", ErrNotFound, movieID)
	}
	sm, ok := m.Showtimes[label]
	if !ok {
		return model.SeatMap{}, fmt.Errorf("%w: showtime %q of %s", ErrNotFound, label, movieID)
	}
	return sm, nil
}

// removeBookings deletes the bookings matching pred and returns them ordered
// by id. Seat maps are left alone: callers remove the maps themselves.
func removeBookings(st *model.Snapshot, pred func(model.Booking) bool) []model.Booking {
	var out []model.Booking
	for id, b := range st.Bookings {
		if pred(b) {
			out = append(out, b)
			delete(st.Bookings, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessID(out[i].ID, out[j].ID, model.ParseBookingID) })
	return out
}

// lessID orders ids by their sequence number so M1000 sorts after M999.
func lessID(a, b string, parse func(string) (int, bool)) bool {
	na, oka := parse(a)
	nb, okb := parse(b)
	if oka && okb && na != nb {
		return na < nb
	}
	return a < b
}
