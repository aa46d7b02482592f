// Package rabbit implements the outbound event publisher on top of RabbitMQ.
//
// The publisher owns a single connection and channel. AMQP channels are not
// safe for concurrent use, so every publish takes a mutex; callers from
// different goroutines are serialized. A broker that is down at startup does
// not prevent the service from starting: the connection is established lazily
// and re-established on the next publish after a failure.
package rabbit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ExchangeName is the durable direct exchange all order events go through.
const ExchangeName = "ecommerce_exchange"

var (
	// ErrBrokerUnavailable signals the broker could not be reached.
	ErrBrokerUnavailable = errors.New("message broker is unavailable")

	// ErrPublishFailed signals the broker was reached but the publish did not succeed.
	ErrPublishFailed = errors.New("failed to publish message")
)

// Publisher publishes events to the order exchange.
type Publisher struct {
	url     string
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel

	closeOnce sync.Once
	closed    bool
}

// NewPublisher creates a publisher for the given broker URL. The broker is
// not contacted here; the first publish dials and declares the exchange.
func NewPublisher(url string, timeout time.Duration, logger *zap.Logger) *Publisher {
	return &Publisher{
		url:     url,
		timeout: timeout,
		logger:  logger,
	}
}

// BrokerURL builds an AMQP connection URL from its parts.
func BrokerURL(host string, port int, user, password string) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
}

// Publish sends the payload to the exchange under the given routing key.
// Messages are persistent and serialized: concurrent callers publish one
// at a time, in the order they acquire the lock.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("%w: publisher is closed", ErrBrokerUnavailable)
	}

	channel, err := p.ensureChannel()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBrokerUnavailable, err)
	}

	publishCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		publishCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = channel.PublishWithContext(
		publishCtx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         payload,
		},
	)
	if err != nil {
		// Drop the channel so the next publish reconnects
		p.teardown()
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	p.logger.Debug("published message",
		zap.String("exchange", ExchangeName),
		zap.String("routing_key", routingKey),
		zap.Int("bytes", len(payload)),
	)

	return nil
}

// ensureChannel returns a usable channel, dialing the broker and declaring
// the exchange if needed. Caller must hold the mutex.
func (p *Publisher) ensureChannel() (*amqp.Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}

	p.teardown()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(
		ExchangeName,
		amqp.ExchangeDirect,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, err
	}

	p.conn = conn
	p.channel = channel
	p.logger.Info("connected to message broker", zap.String("exchange", ExchangeName))

	return channel, nil
}

// teardown drops the current channel and connection. Caller must hold the mutex.
func (p *Publisher) teardown() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close releases the channel and connection. Safe to call multiple times
// and safe to call when the broker was never reached.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.closed = true
		p.teardown()
	})
	return nil
}
