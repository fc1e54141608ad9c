package model

import "sort"

// Movie is a catalog entry. Showtimes are keyed by their free-text label.
type Movie struct {
	ID        string             `json:"-"`
	Title     string             `json:"title"`
	Showtimes map[string]SeatMap `json:"showtimes"`
}

// Labels returns the showtime labels in lexical order.
func (m Movie) Labels() []string {
	out := make([]string, 0, len(m.Showtimes))
	for label := range m.Showtimes {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy.
func (m Movie) Clone() Movie {
	st := make(map[string]SeatMap, len(m.Showtimes))
	for label, sm := range m.Showtimes {
		st[label] = sm.Clone()
	}
	return Movie{ID: m.ID, Title: m.Title, Showtimes: st}
}

// MovieSummary is the (id, title) pair returned by catalog listings.
type MovieSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Showtimes int    `json:"showtimes"`
}
