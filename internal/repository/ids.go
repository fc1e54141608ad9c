package repository

import "github.com/iliyamo/cinereserve/internal/model"

// nextMovieID allocates the next movie id from the snapshot counters.
// Counters only move forward, so ids are never reused after deletions.
func nextMovieID(st *model.Snapshot) string {
	id := model.FormatMovieID(st.NextIDs.Movie)
	st.NextIDs.Movie++
	return id
}

// nextBookingID allocates the next booking id from the snapshot counters.
func nextBookingID(st *model.Snapshot) string {
	id := model.FormatBookingID(st.NextIDs.Booking)
	st.NextIDs.Booking++
	return id
}
