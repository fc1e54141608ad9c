package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Default layout used when a showtime is created without explicit dimensions.
const (
	DefaultRows = 5
	DefaultCols = 8

	// MaxRows is the last row addressable with two letters (ZZ).
	MaxRows = 26 + 26*26
	MaxCols = 999
)

var (
	// ErrInvalidSeat is returned when a seat code is not part of the target seat map.
	ErrInvalidSeat = errors.New("invalid seat")
	// ErrSeatUnavailable is returned when a seat is already booked.
	ErrSeatUnavailable = errors.New("seat unavailable")
	// ErrInvalidLayout is returned for non-positive or oversized seat grids.
	ErrInvalidLayout = errors.New("invalid seat layout")
)

// SeatError reports which codes caused a seat-level failure. It unwraps to
// ErrInvalidSeat or ErrSeatUnavailable.
type SeatError struct {
	Kind  error
	Codes []string
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(e.Codes, ","))
}

func (e *SeatError) Unwrap() error { return e.Kind }

// SeatState is the occupancy of one seat. BookingID is set iff Booked.
type SeatState struct {
	Booked    bool    `json:"booked"`
	BookingID *string `json:"booking_id"`
}

// SeatMap is the fixed-size grid of seats for one showtime.
type SeatMap struct {
	Rows  int                  `json:"rows"`
	Cols  int                  `json:"cols"`
	Seats map[string]SeatState `json:"seats"`
}

// NewSeatMap builds a rows x cols grid with every seat free.
func NewSeatMap(rows, cols int) (SeatMap, error) {
	if rows < 1 || rows > MaxRows || cols < 1 || cols > MaxCols {
		return SeatMap{}, fmt.Errorf("%w: %dx%d", ErrInvalidLayout, rows, cols)
	}
	seats := make(map[string]SeatState, rows*cols)
	for r := 0; r < rows; r++ {
		label := RowLabel(r)
		for c := 1; c <= cols; c++ {
			seats[label+strconv.Itoa(c)] = SeatState{}
		}
	}
	return SeatMap{Rows: rows, Cols: cols, Seats: seats}, nil
}

// RowLabel converts a zero-based row index to A..Z, AA..ZZ.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []byte{}
	for {
		res = append(res, byte('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// RowIndex is the inverse of RowLabel.
func RowIndex(label string) (int, bool) {
	if label == "" {
		return -1, false
	}
	n := 0
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}

// SplitSeatCode splits "AB12" into its zero-based row index and 1-based column.
func SplitSeatCode(code string) (row, col int, ok bool) {
	i := 0
	for i < len(code) && code[i] >= 'A' && code[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(code) || code[i] == '0' {
		return 0, 0, false
	}
	row, ok = RowIndex(code[:i])
	if !ok {
		return 0, 0, false
	}
	col, err := strconv.Atoi(code[i:])
	if err != nil || col < 1 {
		return 0, 0, false
	}
	return row, col, true
}

// NormalizeSeatCode upper-cases and trims a user supplied seat code.
func NormalizeSeatCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsAvailable reports whether code is free.
func (m SeatMap) IsAvailable(code string) (bool, error) {
	st, ok := m.Seats[code]
	if !ok {
		return false, &SeatError{Kind: ErrInvalidSeat, Codes: []string{code}}
	}
	return !st.Booked, nil
}

// MarkBooked assigns every code to bookingID. The whole batch is checked
// before any seat changes.
func (m SeatMap) MarkBooked(codes []string, bookingID string) error {
	if err := m.checkCodes(codes); err != nil {
		return err
	}
	var taken []string
	for _, code := range codes {
		if m.Seats[code].Booked {
			taken = append(taken, code)
		}
	}
	if len(taken) > 0 {
		return &SeatError{Kind: ErrSeatUnavailable, Codes: taken}
	}
	for _, code := range codes {
		id := bookingID
		m.Seats[code] = SeatState{Booked: true, BookingID: &id}
	}
	return nil
}

// MarkFree releases every code.
func (m SeatMap) MarkFree(codes []string) error {
	if err := m.checkCodes(codes); err != nil {
		return err
	}
	for _, code := range codes {
		m.Seats[code] = SeatState{}
	}
	return nil
}

func (m SeatMap) checkCodes(codes []string) error {
	var bad []string
	for _, code := range codes {
		if _, ok := m.Seats[code]; !ok {
			bad = append(bad, code)
		}
	}
	if len(bad) > 0 {
		return &SeatError{Kind: ErrInvalidSeat, Codes: bad}
	}
	return nil
}

// Codes returns the seat codes in grid order (row by row, column ascending).
func (m SeatMap) Codes() []string {
	out := make([]string, 0, len(m.Seats))
	for code := range m.Seats {
		out = append(out, code)
	}
	SortSeatCodes(out)
	return out
}

// SortSeatCodes orders codes by row then column; malformed codes sort last.
func SortSeatCodes(codes []string) {
	sort.SliceStable(codes, func(i, j int) bool {
		ri, ci, oki := SplitSeatCode(codes[i])
		rj, cj, okj := SplitSeatCode(codes[j])
		if oki != okj {
			return oki
		}
		if !oki {
			return codes[i] < codes[j]
		}
		if ri != rj {
			return ri < rj
		}
		return ci < cj
	})
}

// Available counts free seats.
func (m SeatMap) Available() int {
	n := 0
	for _, st := range m.Seats {
		if !st.Booked {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (m SeatMap) Clone() SeatMap {
	seats := make(map[string]SeatState, len(m.Seats))
	for code, st := range m.Seats {
		if st.BookingID != nil {
			id := *st.BookingID
			st.BookingID = &id
		}
		seats[code] = st
	}
	return SeatMap{Rows: m.Rows, Cols: m.Cols, Seats: seats}
}

// Validate checks the grid shape and the booked/booking_id pairing of every seat.
func (m SeatMap) Validate() error {
	if m.Rows < 1 || m.Rows > MaxRows || m.Cols < 1 || m.Cols > MaxCols {
		return fmt.Errorf("%w: %dx%d", ErrInvalidLayout, m.Rows, m.Cols)
	}
	if len(m.Seats) != m.Rows*m.Cols {
		return fmt.Errorf("seat count %d does not match %dx%d", len(m.Seats), m.Rows, m.Cols)
	}
	for code, st := range m.Seats {
		row, col, ok := SplitSeatCode(code)
		if !ok || row >= m.Rows || col > m.Cols {
			return fmt.Errorf("seat %q outside %dx%d grid", code, m.Rows, m.Cols)
		}
		if st.Booked != (st.BookingID != nil) {
			return fmt.Errorf("seat %q: booked=%t with booking_id=%v", code, st.Booked, st.BookingID)
		}
	}
	return nil
}
