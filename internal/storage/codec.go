package storage

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/iliyamo/cinereserve/internal/model"
)

// wireSnapshot mirrors model.Snapshot with pointers so that absent top-level
// keys can be told apart from empty ones.
type wireSnapshot struct {
	Meta     *model.Meta              `json:"meta"`
	NextIDs  *wireNextIDs             `json:"next_ids"`
	Movies   map[string]model.Movie   `json:"movies"`
	Bookings map[string]model.Booking `json:"bookings"`
}

// wireNextIDs tells an absent counter apart from a zero one.
type wireNextIDs struct {
	Movie   *int `json:"movie"`
	Booking *int `json:"booking"`
}

// Encode renders a snapshot as indented JSON.
func Encode(snap model.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// Decode parses a snapshot. Missing top-level keys are backfilled with empty
// defaults; ids are copied from the map keys into the values. A missing
// counter resumes after the highest id already issued of its kind, so stored
// movies and bookings stay valid. Syntax errors are reported as ErrCorrupt.
func Decode(data []byte) (model.Snapshot, error) {
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	snap := model.NewSnapshot()
	if w.Meta != nil {
		snap.Meta = *w.Meta
	}
	for id, m := range w.Movies {
		m.ID = id
		if m.Showtimes == nil {
			m.Showtimes = map[string]model.SeatMap{}
		}
		snap.Movies[id] = m
	}
	for id, b := range w.Bookings {
		b.ID = id
		snap.Bookings[id] = b
	}
	var next wireNextIDs
	if w.NextIDs != nil {
		next = *w.NextIDs
	}
	if next.Movie != nil {
		snap.NextIDs.Movie = *next.Movie
	} else {
		snap.NextIDs.Movie = resumeAfter(snap.Movies, model.ParseMovieID)
	}
	if next.Booking != nil {
		snap.NextIDs.Booking = *next.Booking
	} else {
		snap.NextIDs.Booking = resumeAfter(snap.Bookings, model.ParseBookingID)
	}
	return snap, nil
}

// resumeAfter returns one past the highest well-formed id among the keys of
// m. Malformed keys are left for Snapshot.Validate to reject.
func resumeAfter[V any](m map[string]V, parse func(string) (int, bool)) int {
	highest := 0
	for id := range m {
		if n, ok := parse(id); ok && n > highest {
			highest = n
		}
	}
	return highest + 1
}
