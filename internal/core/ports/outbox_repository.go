package ports

import (
	"context"

	"sales/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// OutboxRepository defines the persistence contract for outbox messages.
// Messages are added in the same transaction as the state change they
// announce and marked delivered by the dispatcher after a successful publish.
type OutboxRepository interface {
	// Add persists a new outbox message.
	Add(ctx context.Context, message *outbox.Message) error

	// GetUndelivered retrieves up to limit pending messages, oldest first.
	GetUndelivered(ctx context.Context, limit int) ([]*outbox.Message, error)

	// MarkDelivered records that the message was handed to the broker.
	MarkDelivered(ctx context.Context, id uuid.UUID) error

	// MarkFailed increments the delivery attempt counter for the message.
	MarkFailed(ctx context.Context, id uuid.UUID) error
}
