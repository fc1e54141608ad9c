package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	movieIDPrefix   = "M"
	bookingIDPrefix = "B"
)

// FormatMovieID renders sequence n as M001, M002, ...
func FormatMovieID(n int) string { return fmt.Sprintf("%s%03d", movieIDPrefix, n) }

// FormatBookingID renders sequence n as B000001, B000002, ...
func FormatBookingID(n int) string { return fmt.Sprintf("%s%06d", bookingIDPrefix, n) }

// ParseMovieID returns the sequence number of a movie id.
func ParseMovieID(id string) (int, bool) { return parseID(id, movieIDPrefix) }

// ParseBookingID returns the sequence number of a booking id.
func ParseBookingID(id string) (int, bool) { return parseID(id, bookingIDPrefix) }

func parseID(id, prefix string) (int, bool) {
	digits, ok := strings.CutPrefix(id, prefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
