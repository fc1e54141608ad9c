package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/iliyamo/cinereserve/internal/model"
)

// BookingRepo creates, cancels and looks up bookings.
type BookingRepo struct {
	store *Store
}

// NewBookingRepo constructs a BookingRepo over store.
func NewBookingRepo(store *Store) *BookingRepo {
	if store == nil {
		panic("nil store passed to NewBookingRepo")
	}
	return &BookingRepo{store: store}
}

// Reserve books seats of one showtime under a new booking id. Seat codes are
// normalized and de-duplicated. Either every seat is booked or none is.
func (r *BookingRepo) Reserve(ctx context.Context, movieID, showtime string, seats []string, name string) (model.Booking, error) {
	codes := dedupeSeats(seats)
	name = strings.TrimSpace(name)
	if name == "" {
		name = model.DefaultCustomerName
	}
	var out model.Booking
	err := r.store.update(ctx, func(st *model.Snapshot) error {
		sm, err := lookupSeatMap(st, movieID, showtime)
		if err != nil {
			return err
		}
		if len(codes) == 0 {
			return ErrEmptySelection
		}
		id := nextBookingID(st)
		if err := sm.MarkBooked(codes, id); err != nil {
			return err
		}
		b := model.Booking{
			ID:           id,
			MovieID:      movieID,
			Showtime:     showtime,
			Seats:        codes,
			CustomerName: name,
			CreatedAt:    model.Now(),
		}
		st.Bookings[id] = b
		out = b.Clone()
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return out, nil
}

// Cancel frees the seats of a booking and deletes it. The removed booking is
// returned.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID string) (model.Booking, error) {
	var out model.Booking
	err := r.store.update(ctx, func(st *model.Snapshot) error {
		b, ok := st.Bookings[bookingID]
		if !ok {
			return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		// Cascades remove bookings before their seat maps, so the map exists.
		sm, err := lookupSeatMap(st, b.MovieID, b.Showtime)
		if err != nil {
			return err
		}
		if err := sm.MarkFree(b.Seats); err != nil {
			return err
		}
		delete(st.Bookings, bookingID)
		out = b.Clone()
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return out, nil
}

// Get returns a booking together with its movie title.
func (r *BookingRepo) Get(ctx context.Context, bookingID string) (model.BookingDetail, error) {
	var out model.BookingDetail
	err := r.store.view(func(st *model.Snapshot) error {
		b, ok := st.Bookings[bookingID]
		if !ok {
			return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		title := model.RemovedMovieTitle
		if m, ok := st.Movies[b.MovieID]; ok {
			title = m.Title
		}
		out = model.BookingDetail{Booking: b.Clone(), MovieTitle: title}
		return nil
	})
	return out, err
}

// List returns every booking ordered by id.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	var out []model.Booking
	err := r.store.view(func(st *model.Snapshot) error {
		out = make([]model.Booking, 0, len(st.Bookings))
		for _, b := range st.Bookings {
			out = append(out, b.Clone())
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return lessID(out[i].ID, out[j].ID, model.ParseBookingID) })
	return out, err
}

func dedupeSeats(seats []string) []string {
	out := make([]string, 0, len(seats))
	seen := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		code := model.NormalizeSeatCode(s)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			out = append(out, code)
		}
	}
	return out
}
