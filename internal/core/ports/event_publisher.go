package ports

import "context"

// EventPublisher delivers serialized domain events to the message broker.
//
// Publish hands the payload to the broker under the given routing key. A nil
// return means the send call succeeded locally; broker acknowledgement is not
// awaited. Implementations must be safe for concurrent use and must preserve
// the invocation order of publishes from a single process.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
}
