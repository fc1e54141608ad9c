package queue

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer listens to the booking queues and appends one line per event to
// a log file.
type Consumer struct {
	URL     string
	LogPath string
	Log     *zap.Logger
}

// Run connects to the broker, declares the booking queues (durable) and
// consumes until ctx is cancelled. Connection failures are retried with
// exponential backoff; a message that cannot be handled is rejected without
// requeue so the loop keeps going.
func (c *Consumer) Run(ctx context.Context) error {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			log.Warn("booking-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("booking-consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("booking-consumer: set QoS failed", zap.Error(err))
	}

	confirmed, err := consume(ch, BookingConfirmedQueue)
	if err != nil {
		return err
	}
	cancelled, err := consume(ch, BookingCancelledQueue)
	if err != nil {
		return err
	}

	for {
		var (
			d     amqp.Delivery
			ok    bool
			queue string
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok = <-confirmed:
			queue = BookingConfirmedQueue
		case d, ok = <-cancelled:
			queue = BookingCancelledQueue
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}
		if err := c.HandleMessage(queue, d.Body); err != nil {
			log.Error("booking-consumer: handle message failed", zap.String("queue", queue), zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
}

func consume(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("queue consume %s: %w", queue, err)
	}
	return msgs, nil
}

// HandleMessage decodes one event and appends it to the log file.
func (c *Consumer) HandleMessage(queue string, body []byte) error {
	var ev BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.BookingID == "" {
		return errors.New("event without booking_id")
	}
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(queue, ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders an event as a single human-friendly log line.
func FormatLine(queue string, ev BookingEvent) string {
	action := "Booking confirmed"
	if queue == BookingCancelledQueue {
		action = "Booking cancelled"
	}
	line := fmt.Sprintf("[%s] %s | booking_id=%s | movie_id=%s | movie=%q | showtime=%q | name=%q | seats=[%s]",
		ev.OccurredAt, action, ev.BookingID, ev.MovieID, ev.MovieTitle, ev.Showtime, ev.CustomerName, strings.Join(ev.Seats, ","))
	if ev.Reason != "" {
		line += " | reason=" + ev.Reason
	}
	return line + "\n"
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
