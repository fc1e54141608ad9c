package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinereserve/internal/model"
	"github.com/iliyamo/cinereserve/internal/storage"
)

func TestAddMovieAssignsIncreasingIDs(t *testing.T) {
	s, _ := newTestStore(t)
	catalog := NewCatalogRepo(s)
	ctx := context.Background()

	a, err := catalog.AddMovie(ctx, "Alien")
	require.NoError(t, err)
	b, err := catalog.AddMovie(ctx, "  Heat ")
	require.NoError(t, err)
	assert.Equal(t, "M001", a)
	assert.Equal(t, "M002", b)

	_, err = catalog.RemoveMovie(ctx, b)
	require.NoError(t, err)
	c, err := catalog.AddMovie(ctx, "Ran")
	require.NoError(t, err)
	assert.Equal(t, "M003", c, "ids are never reused")

	_, err = catalog.AddMovie(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	list, err := catalog.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "M001", list[0].ID)
	assert.Equal(t, "M003", list[1].ID)
}

func TestAddShowtime(t *testing.T) {
	s, _ := newTestStore(t)
	catalog := NewCatalogRepo(s)
	ctx := context.Background()
	id, _ := catalog.AddMovie(ctx, "Alien")

	sm, err := catalog.AddShowtime(ctx, id, " 2024-01-01 18:00 ", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRows, sm.Rows)
	assert.Equal(t, model.DefaultCols, sm.Cols)

	labels, err := catalog.ListShowtimes(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01 18:00"}, labels)

	_, err = catalog.AddShowtime(ctx, id, "", 1, 1)
	assert.ErrorIs(t, err, ErrEmptyShowtime)
	_, err = catalog.AddShowtime(ctx, "M404", "x", 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = catalog.AddShowtime(ctx, id, "huge", model.MaxRows+1, 1)
	assert.ErrorIs(t, err, ErrInvalidLayout)
	_, err = catalog.ListShowtimes(ctx, "M404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomDefaultLayout(t *testing.T) {
	s, err := Open(context.Background(), storage.NewMemory(), Options{DefaultRows: 3, DefaultCols: 4})
	require.NoError(t, err)
	catalog := NewCatalogRepo(s)
	id, _ := catalog.AddMovie(context.Background(), "Alien")
	sm, err := catalog.AddShowtime(context.Background(), id, "late", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, len(sm.Seats))
}

func TestDuplicateShowtimeKeepsOriginal(t *testing.T) {
	s, _ := newTestStore(t)
	catalog := NewCatalogRepo(s)
	bookings := NewBookingRepo(s)
	ctx := context.Background()
	id, _ := catalog.AddMovie(ctx, "Alien")
	_, err := catalog.AddShowtime(ctx, id, "2024-01-01 18:00", 2, 2)
	require.NoError(t, err)
	_, err = bookings.Reserve(ctx, id, "2024-01-01 18:00", []string{"A1"}, "Ann")
	require.NoError(t, err)

	_, err = catalog.AddShowtime(ctx, id, "2024-01-01 18:00", 5, 5)
	assert.ErrorIs(t, err, ErrDuplicateShowtime)

	sm, err := catalog.SeatMap(ctx, id, "2024-01-01 18:00")
	require.NoError(t, err)
	assert.Equal(t, 2, sm.Rows)
	assert.True(t, sm.Seats["A1"].Booked)
	requireConsistent(t, s)
}

func TestRemoveMovieCascades(t *testing.T) {
	s, _ := newTestStore(t)
	catalog := NewCatalogRepo(s)
	bookings := NewBookingRepo(s)
	ctx := context.Background()

	id, _ := catalog.AddMovie(ctx, "Alien")
	other, _ := catalog.AddMovie(ctx, "Heat")
	for _, label := range []string{"2024-01-01 18:00", "late"} {
		_, err := catalog.AddShowtime(ctx, id, label, 2, 2)
		require.NoError(t, err)
	}
	_, err := catalog.AddShowtime(ctx, other, "late", 2, 2)
	require.NoError(t, err)

	b1, err := bookings.Reserve(ctx, id, "2024-01-01 18:00", []string{"A1"}, "Ann")
	require.NoError(t, err)
	b2, err := bookings.Reserve(ctx, id, "late", []string{"B2"}, "Bob")
	require.NoError(t, err)
	keep, err := bookings.Reserve(ctx, other, "late", []string{"A1"}, "Cy")
	require.NoError(t, err)

	removed, err := catalog.RemoveMovie(ctx, id)
	require.NoError(t, err)
	require.Len(t, removed, 2)
	assert.Equal(t, b1.ID, removed[0].ID)
	assert.Equal(t, b2.ID, removed[1].ID)

	_, err = bookings.Get(ctx, b1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = catalog.Movie(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = bookings.Get(ctx, keep.ID)
	assert.NoError(t, err)
	requireConsistent(t, s)

	_, err = catalog.RemoveMovie(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveShowtimeCascades(t *testing.T) {
	s, _ := newTestStore(t)
	catalog := NewCatalogRepo(s)
	bookings := NewBookingRepo(s)
	ctx := context.Background()

	id, _ := catalog.AddMovie(ctx, "Alien")
	_, _ = catalog.AddShowtime(ctx, id, "early", 2, 2)
	_, _ = catalog.AddShowtime(ctx, id, "late", 2, 2)
	gone, err := bookings.Reserve(ctx, id, "early", []string{"A1", "A2"}, "Ann")
	require.NoError(t, err)
	kept, err := bookings.Reserve(ctx, id, "late", []string{"A1"}, "Bob")
	require.NoError(t, err)

	removed, err := catalog.RemoveShowtime(ctx, id, "early")
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, gone.ID, removed[0].ID)

	labels, _ := catalog.ListShowtimes(ctx, id)
	assert.Equal(t, []string{"late"}, labels)
	_, err = bookings.Get(ctx, kept.ID)
	assert.NoError(t, err)
	requireConsistent(t, s)

	_, err = catalog.RemoveShowtime(ctx, id, "early")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = catalog.RemoveShowtime(ctx, "M404", "late")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMoviesSortsNumerically(t *testing.T) {
	assert.True(t, lessID("M999", "M1000", model.ParseMovieID))
	assert.False(t, lessID("M1000", "M999", model.ParseMovieID))
}
