package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinereserve/internal/model"
)

func TestDecodeBackfillsMissingKeys(t *testing.T) {
	snap, err := Decode([]byte(`{"movies": {"M001": {"title": "Alien"}}}`))
	require.NoError(t, err)

	assert.Equal(t, model.NextIDs{Movie: 2, Booking: 1}, snap.NextIDs)
	assert.NotNil(t, snap.Bookings)
	require.Contains(t, snap.Movies, "M001")
	m := snap.Movies["M001"]
	assert.Equal(t, "M001", m.ID)
	assert.NotNil(t, m.Showtimes)
}

func TestDecodeResumesMissingCounters(t *testing.T) {
	raw := `{
	  "movies": {"M003": {"title": "Alien"}, "M010": {"title": "Heat"}},
	  "bookings": {"B000007": {"movie_id": "M003"}}
	}`
	snap, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, model.NextIDs{Movie: 11, Booking: 8}, snap.NextIDs)

	// a present counter is kept as stored, even when it lags behind
	snap, err = Decode([]byte(`{"next_ids": {"movie": 1}, "movies": {"M004": {"title": "Ran"}}}`))
	require.NoError(t, err)
	assert.Equal(t, model.NextIDs{Movie: 1, Booking: 1}, snap.NextIDs)
	assert.Error(t, snap.Validate())

	snap, err = Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, model.NextIDs{Movie: 1, Booking: 1}, snap.NextIDs)
}

func TestDecodeCopiesIDsFromKeys(t *testing.T) {
	raw := `{
	  "next_ids": {"movie": 2, "booking": 2},
	  "movies": {"M001": {"title": "Alien", "showtimes": {}}},
	  "bookings": {"B000001": {"movie_id": "M001", "showtime": "x", "seats": ["A1"], "name": "Ann", "created_at": "2024-03-01T10:00:00"}}
	}`
	snap, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "B000001", snap.Bookings["B000001"].ID)
	assert.Equal(t, 2024, snap.Bookings["B000001"].CreatedAt.Year())
}

func TestDecodeCorrupt(t *testing.T) {
	for _, raw := range []string{`{`, `[]`, `not json`, `{"movies": 3}`} {
		_, err := Decode([]byte(raw))
		assert.ErrorIs(t, err, ErrCorrupt, raw)
	}
}

func TestEncodeDecodeKeepsSeatState(t *testing.T) {
	snap := model.NewSnapshot()
	sm, err := model.NewSeatMap(1, 2)
	require.NoError(t, err)
	require.NoError(t, sm.MarkBooked([]string{"A2"}, "B000001"))
	snap.Movies["M001"] = model.Movie{ID: "M001", Title: "Alien", Showtimes: map[string]model.SeatMap{"late": sm}}
	snap.Bookings["B000001"] = model.Booking{ID: "B000001", MovieID: "M001", Showtime: "late", Seats: []string{"A2"}, CustomerName: "Guest"}
	snap.NextIDs = model.NextIDs{Movie: 2, Booking: 2}

	data, err := Encode(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"meta\"")

	back, err := Decode(data)
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	seat := back.Movies["M001"].Showtimes["late"].Seats["A2"]
	require.NotNil(t, seat.BookingID)
	assert.Equal(t, "B000001", *seat.BookingID)
	assert.Nil(t, back.Movies["M001"].Showtimes["late"].Seats["A1"].BookingID)
}
