// Package service publishes booking events to RabbitMQ. Errors are logged
// and returned so callers can ignore failures without interrupting the
// request flow.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/cinereserve/internal/queue"
)

// Publisher sends a booking event to a named queue.
type Publisher interface {
	Publish(ctx context.Context, queueName string, event queue.BookingEvent) error
}

// NopPublisher drops every event. It is used when the queue is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, queue.BookingEvent) error { return nil }

// AMQPPublisher publishes events as persistent JSON messages on the default
// exchange, using the queue name as routing key.
type AMQPPublisher struct {
	url string
	log *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
}

// NewAMQPPublisher returns a publisher for the broker at url. The connection
// is opened lazily and re-opened after failures.
func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &AMQPPublisher{url: url, log: log}
}

// Publish declares the queue (idempotent, durable) and publishes the event.
func (p *AMQPPublisher) Publish(ctx context.Context, queueName string, event queue.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	conn, err := p.connection()
	if err != nil {
		p.log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq: channel open failed", zap.Error(err))
		p.reset()
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn("rabbitmq: queue declare failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Warn("rabbitmq: publish failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}
	p.log.Debug("rabbitmq: event published",
		zap.String("queue", queueName),
		zap.String("booking_id", event.BookingID),
		zap.String("message_id", pub.MessageId))
	return nil
}

// Close releases the broker connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

func (p *AMQPPublisher) connection() (*amqp.Connection, error) {
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn, nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	p.conn = conn
	return conn, nil
}

func (p *AMQPPublisher) reset() {
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
