package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeatMapLayout(t *testing.T) {
	sm, err := NewSeatMap(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, sm.Rows)
	assert.Equal(t, 3, sm.Cols)
	assert.Equal(t, []string{"A1", "A2", "A3", "B1", "B2", "B3"}, sm.Codes())
	assert.Equal(t, 6, sm.Available())

	for _, tc := range []struct{ rows, cols int }{{0, 5}, {5, 0}, {-1, 1}, {MaxRows + 1, 1}, {1, MaxCols + 1}} {
		_, err := NewSeatMap(tc.rows, tc.cols)
		assert.ErrorIs(t, err, ErrInvalidLayout, "%dx%d", tc.rows, tc.cols)
	}
}

func TestRowLabelRoundTrip(t *testing.T) {
	cases := map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", MaxRows - 1: "ZZ"}
	for i, want := range cases {
		assert.Equal(t, want, RowLabel(i))
		got, ok := RowIndex(want)
		assert.True(t, ok)
		assert.Equal(t, i, got)
	}
	_, ok := RowIndex("a")
	assert.False(t, ok)
}

func TestSplitSeatCode(t *testing.T) {
	row, col, ok := SplitSeatCode("AB12")
	require.True(t, ok)
	assert.Equal(t, 27, row)
	assert.Equal(t, 12, col)

	for _, bad := range []string{"", "A", "12", "A0", "A01", "a1", "A-1", "A1B"} {
		_, _, ok := SplitSeatCode(bad)
		assert.False(t, ok, bad)
	}
}

func TestWideGridUsesTwoLetterRows(t *testing.T) {
	sm, err := NewSeatMap(28, 1)
	require.NoError(t, err)
	codes := sm.Codes()
	assert.Equal(t, "Z1", codes[25])
	assert.Equal(t, "AA1", codes[26])
	assert.Equal(t, "AB1", codes[27])
}

func TestMarkBookedIsAllOrNothing(t *testing.T) {
	sm, err := NewSeatMap(2, 2)
	require.NoError(t, err)
	require.NoError(t, sm.MarkBooked([]string{"A1"}, "B000001"))

	err = sm.MarkBooked([]string{"A2", "A1"}, "B000002")
	var se *SeatError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, ErrSeatUnavailable)
	assert.Equal(t, []string{"A1"}, se.Codes)
	free, _ := sm.IsAvailable("A2")
	assert.True(t, free, "A2 must stay free after a failed batch")

	err = sm.MarkBooked([]string{"A2", "C9"}, "B000002")
	assert.ErrorIs(t, err, ErrInvalidSeat)
	free, _ = sm.IsAvailable("A2")
	assert.True(t, free)
}

func TestMarkBookedInvalidBeforeUnavailable(t *testing.T) {
	sm, _ := NewSeatMap(1, 2)
	require.NoError(t, sm.MarkBooked([]string{"A1"}, "B000001"))
	err := sm.MarkBooked([]string{"A1", "Z9"}, "B000002")
	assert.ErrorIs(t, err, ErrInvalidSeat)
}

func TestMarkFreeAndIsAvailable(t *testing.T) {
	sm, _ := NewSeatMap(1, 2)
	require.NoError(t, sm.MarkBooked([]string{"A1", "A2"}, "B000001"))
	assert.Equal(t, 0, sm.Available())
	require.NoError(t, sm.MarkFree([]string{"A1"}))

	free, err := sm.IsAvailable("A1")
	require.NoError(t, err)
	assert.True(t, free)
	assert.Nil(t, sm.Seats["A1"].BookingID)

	_, err = sm.IsAvailable("B1")
	assert.ErrorIs(t, err, ErrInvalidSeat)
}

func TestSeatMapCloneIsDeep(t *testing.T) {
	sm, _ := NewSeatMap(1, 1)
	require.NoError(t, sm.MarkBooked([]string{"A1"}, "B000001"))
	cp := sm.Clone()
	*cp.Seats["A1"].BookingID = "B999999"
	cp.Seats["A1"] = SeatState{}
	assert.True(t, sm.Seats["A1"].Booked)
	assert.Equal(t, "B000001", *sm.Seats["A1"].BookingID)
}

func TestSeatMapValidate(t *testing.T) {
	sm, _ := NewSeatMap(2, 2)
	require.NoError(t, sm.Validate())

	bad := sm.Clone()
	bad.Seats["A1"] = SeatState{Booked: true}
	assert.Error(t, bad.Validate())

	missing := sm.Clone()
	delete(missing.Seats, "B2")
	assert.Error(t, missing.Validate())

	outside := sm.Clone()
	delete(outside.Seats, "B2")
	outside.Seats["C1"] = SeatState{}
	assert.Error(t, outside.Validate())
}

func TestSortSeatCodes(t *testing.T) {
	codes := []string{"B1", "A10", "AA1", "A2", "??"}
	SortSeatCodes(codes)
	assert.Equal(t, []string{"A2", "A10", "B1", "AA1", "??"}, codes)
}
