package mq

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"ridecarry/pkg/logger"
)

// Exchange and queue names for the booking event bus.
const (
	BookingExchange      = "booking_topic"
	QueueBookingCreated  = "booking.created"
	QueueBookingDecision = "booking.decision"
)

type RabbitMQ struct {
	url    string
	conn   *amqp.Connection
	ch     *amqp.Channel
	log    logger.ILogger
	mu     sync.RWMutex
	closed bool
}

// New dials RabbitMQ with a bounded retry loop and declares the booking
// topology on the opened channel.
func New(ctx context.Context, url string, log logger.ILogger) (*RabbitMQ, error) {
	mq := &RabbitMQ{url: url, log: log}

	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := mq.connect()
		if err == nil {
			log.Info("RabbitMQ connected", logger.Int("attempt", attempt))
			if err := mq.setupTopology(); err != nil {
				mq.Close()
				return nil, err
			}
			return mq, nil
		}

		log.Warning("RabbitMQ connection attempt failed",
			logger.Int("attempt", attempt), logger.Error(err))
		if attempt == maxRetries {
			return nil, fmt.Errorf("connect rabbitmq after %d attempts: %w", maxRetries, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
			retryDelay = time.Duration(float64(retryDelay) * 1.5)
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}
		}
	}

	return nil, fmt.Errorf("unexpected: retry loop ended without a connection")
}

func (mq *RabbitMQ) connect() error {
	conn, err := amqp.Dial(mq.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.Qos(10, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("set qos: %w", err)
	}

	mq.mu.Lock()
	mq.conn = conn
	mq.ch = ch
	mq.mu.Unlock()

	return nil
}

func (mq *RabbitMQ) setupTopology() error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	if err := ch.ExchangeDeclare(BookingExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", BookingExchange, err)
	}

	for _, q := range []string{QueueBookingCreated, QueueBookingDecision} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
		if err := ch.QueueBind(q, q, BookingExchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", q, err)
		}
	}

	return nil
}

func (mq *RabbitMQ) Channel() *amqp.Channel {
	mq.mu.RLock()
	defer mq.mu.RUnlock()
	return mq.ch
}

func (mq *RabbitMQ) Publish(ctx context.Context, exchange, routingKey string, body []byte) error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return ch.PublishWithContext(
		publishCtx,
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}

// Consume reads from a queue on a dedicated goroutine until ctx is done.
// Deliveries are acked after the handler returns; a handler error nacks with
// requeue disabled so a poison message cannot loop forever.
func (mq *RabbitMQ) Consume(ctx context.Context, queue, consumer string, handler func(amqp.Delivery) error) error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	msgs, err := ch.Consume(queue, consumer, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming %s: %w", queue, err)
	}

	mq.log.Info("consumer started", logger.String("queue", queue))

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					mq.log.Info("consumer stopped", logger.String("queue", queue))
					return
				}
				if err := handler(msg); err != nil {
					mq.log.Error("message handler failed", logger.String("queue", queue), logger.Error(err))
					_ = msg.Nack(false, false)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	return nil
}

func (mq *RabbitMQ) Close() {
	mq.mu.Lock()
	defer mq.mu.Unlock()

	if mq.closed {
		return
	}
	mq.closed = true

	if mq.ch != nil {
		_ = mq.ch.Close()
	}
	if mq.conn != nil {
		_ = mq.conn.Close()
	}
	mq.log.Info("RabbitMQ connection closed")
}
