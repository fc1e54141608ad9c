package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/cinereserve/internal/model"
	"github.com/iliyamo/cinereserve/internal/queue"
)

// publishTimeout bounds how long a request waits on the broker.
const publishTimeout = 3 * time.Second

// BookingEvents turns booking changes into queue events. Failures are logged
// and never returned: a booking is final once the store has saved it.
type BookingEvents struct {
	pub Publisher
	log *zap.Logger
}

// NewBookingEvents wraps pub. A nil pub drops events.
func NewBookingEvents(pub Publisher, log *zap.Logger) *BookingEvents {
	if pub == nil {
		pub = NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingEvents{pub: pub, log: log}
}

// Confirmed publishes a booking.confirmed event.
func (e *BookingEvents) Confirmed(ctx context.Context, b model.Booking, title string) {
	e.publish(ctx, queue.BookingConfirmedQueue, queue.NewBookingEvent(b, title, ""))
}

// Cancelled publishes one booking.cancelled event per booking.
func (e *BookingEvents) Cancelled(ctx context.Context, title, reason string, bookings ...model.Booking) {
	for _, b := range bookings {
		e.publish(ctx, queue.BookingCancelledQueue, queue.NewBookingEvent(b, title, reason))
	}
}

func (e *BookingEvents) publish(ctx context.Context, name string, ev queue.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := e.pub.Publish(ctx, name, ev); err != nil {
		e.log.Warn("booking event not published",
			zap.String("queue", name),
			zap.String("booking_id", ev.BookingID),
			zap.Error(err))
	}
}
