// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/cinereserve/internal/model"
)

// Queue names. Each queue carries BookingEvent payloads.
const (
	BookingConfirmedQueue = "booking.confirmed"
	BookingCancelledQueue = "booking.cancelled"
)

// Reasons carried by cancellation events.
const (
	ReasonCancelled       = "cancelled"
	ReasonMovieRemoved    = "movie_removed"
	ReasonShowtimeRemoved = "showtime_removed"
)

// BookingEvent is published when a booking is confirmed or removed. It
// contains enough information for downstream consumers to log or notify
// without reading the store.
type BookingEvent struct {
	BookingID    string   `json:"booking_id"`
	MovieID      string   `json:"movie_id"`
	MovieTitle   string   `json:"movie_title,omitempty"`
	Showtime     string   `json:"showtime"`
	Seats        []string `json:"seats"`
	CustomerName string   `json:"name,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	OccurredAt   string   `json:"occurred_at"`
}

// NewBookingEvent builds an event from a booking.
func NewBookingEvent(b model.Booking, title, reason string) BookingEvent {
	return BookingEvent{
		BookingID:    b.ID,
		MovieID:      b.MovieID,
		MovieTitle:   title,
		Showtime:     b.Showtime,
		Seats:        append([]string(nil), b.Seats...),
		CustomerName: b.CustomerName,
		Reason:       reason,
		OccurredAt:   model.Now().Format(time.RFC3339),
	}
}
