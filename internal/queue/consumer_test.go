package queue

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinereserve/internal/model"
)

func TestHandleMessageAppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "booking.log")
	c := &Consumer{LogPath: path}

	b := model.Booking{ID: "B000001", MovieID: "M001", Showtime: "2024-01-01 18:00", Seats: []string{"A1", "A2"}, CustomerName: "Ann"}
	confirmed, err := json.Marshal(NewBookingEvent(b, "Heat", ""))
	require.NoError(t, err)
	cancelled, err := json.Marshal(NewBookingEvent(b, "Heat", ReasonMovieRemoved))
	require.NoError(t, err)

	require.NoError(t, c.HandleMessage(BookingConfirmedQueue, confirmed))
	require.NoError(t, c.HandleMessage(BookingCancelledQueue, cancelled))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Booking confirmed | booking_id=B000001 | movie_id=M001")
	assert.Contains(t, lines[0], "seats=[A1,A2]")
	assert.NotContains(t, lines[0], "reason=")
	assert.Contains(t, lines[1], "Booking cancelled")
	assert.True(t, strings.HasSuffix(lines[1], "reason=movie_removed"))
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
	c := &Consumer{LogPath: filepath.Join(t.TempDir(), "booking.log")}
	assert.Error(t, c.HandleMessage(BookingConfirmedQueue, []byte("{")))
	assert.Error(t, c.HandleMessage(BookingConfirmedQueue, []byte(`{"movie_id":"M001"}`)))
	_, err := os.Stat(c.LogPath)
	assert.True(t, os.IsNotExist(err))
}
