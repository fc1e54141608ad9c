package model

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks every structural and cross-reference invariant of the
// snapshot: grid shapes, seat/booking pairing in both directions and that the
// id counters are ahead of every issued id.
func (s Snapshot) Validate() error {
	if s.NextIDs.Movie < 1 || s.NextIDs.Booking < 1 {
		return fmt.Errorf("next_ids must be positive, got %+v", s.NextIDs)
	}
	for id, m := range s.Movies {
		n, ok := ParseMovieID(id)
		if !ok {
			return fmt.Errorf("malformed movie id %q", id)
		}
		if n >= s.NextIDs.Movie {
			return fmt.Errorf("movie id %q not below next id %d", id, s.NextIDs.Movie)
		}
		if strings.TrimSpace(m.Title) == "" {
			return fmt.Errorf("movie %q has no title", id)
		}
		for label, sm := range m.Showtimes {
			if strings.TrimSpace(label) == "" {
				return fmt.Errorf("movie %q has a blank showtime label", id)
			}
			if err := sm.Validate(); err != nil {
				return fmt.Errorf("movie %q showtime %q: %w", id, label, err)
			}
		}
	}
	for id, b := range s.Bookings {
		n, ok := ParseBookingID(id)
		if !ok {
			return fmt.Errorf("malformed booking id %q", id)
		}
		if n >= s.NextIDs.Booking {
			return fmt.Errorf("booking id %q not below next id %d", id, s.NextIDs.Booking)
		}
		m, ok := s.Movies[b.MovieID]
		if !ok {
			return fmt.Errorf("booking %q references missing movie %q", id, b.MovieID)
		}
		sm, ok := m.Showtimes[b.Showtime]
		if !ok {
			return fmt.Errorf("booking %q references missing showtime %q", id, b.Showtime)
		}
		if len(b.Seats) == 0 {
			return fmt.Errorf("booking %q has no seats", id)
		}
		seen := make(map[string]struct{}, len(b.Seats))
		for _, code := range b.Seats {
			if _, dup := seen[code]; dup {
				return fmt.Errorf("booking %q lists seat %q twice", id, code)
			}
			seen[code] = struct{}{}
			st, ok := sm.Seats[code]
			if !ok || !st.Booked || *st.BookingID != id {
				return fmt.Errorf("booking %q seat %q is not held by it", id, code)
			}
		}
	}
	for mid, m := range s.Movies {
		for label, sm := range m.Showtimes {
			for code, st := range sm.Seats {
				if !st.Booked {
					continue
				}
				b, ok := s.Bookings[*st.BookingID]
				if !ok || b.MovieID != mid || b.Showtime != label || !slices.Contains(b.Seats, code) {
					return fmt.Errorf("seat %q of %s @ %q held by unknown booking %q", code, mid, label, *st.BookingID)
				}
			}
		}
	}
	return nil
}

