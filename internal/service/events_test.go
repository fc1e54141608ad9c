package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinereserve/internal/model"
	"github.com/iliyamo/cinereserve/internal/queue"
)

type recordingPublisher struct {
	mu     sync.Mutex
	queues []string
	events []queue.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, name string, ev queue.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queues = append(p.queues, name)
	p.events = append(p.events, ev)
	return p.err
}

func TestBookingEventsConfirmed(t *testing.T) {
	pub := &recordingPublisher{}
	ev := NewBookingEvents(pub, nil)

	b := model.Booking{ID: "B000001", MovieID: "M001", Showtime: "2024-01-01 18:00", Seats: []string{"A1"}, CustomerName: "Guest"}
	ev.Confirmed(context.Background(), b, "Heat")

	assert.Equal(t, []string{queue.BookingConfirmedQueue}, pub.queues)
	assert.Equal(t, "B000001", pub.events[0].BookingID)
	assert.Equal(t, "Heat", pub.events[0].MovieTitle)
	assert.Empty(t, pub.events[0].Reason)
}

func TestBookingEventsCancelledSwallowsErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	ev := NewBookingEvents(pub, nil)

	ev.Cancelled(context.Background(), "Heat", queue.ReasonShowtimeRemoved,
		model.Booking{ID: "B000001"}, model.Booking{ID: "B000002"})

	assert.Equal(t, []string{queue.BookingCancelledQueue, queue.BookingCancelledQueue}, pub.queues)
	assert.Equal(t, queue.ReasonShowtimeRemoved, pub.events[1].Reason)
}

func TestNilPublisherDropsEvents(t *testing.T) {
	ev := NewBookingEvents(nil, nil)
	assert.NotPanics(t, func() { ev.Confirmed(context.Background(), model.Booking{ID: "B000001"}, "") })
}
