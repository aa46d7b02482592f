// Package outboxrepo persists outbox messages alongside the order aggregates
// that produced them. Messages are written in the same transaction as the
// order, then picked up by the dispatch job and handed to the broker.
package outboxrepo

import (
	"time"

	"sales/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for persisting outbox messages.
// Seq is a store-assigned monotonic position used to dispatch messages in
// capture order; created_at timestamps alone can collide.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	Seq         int64     `gorm:"autoIncrement;uniqueIndex"`
	OrderID     int64     `gorm:"index"`
	RoutingKey  string
	Payload     []byte
	Attempts    int
	CreatedAt   time.Time
	DeliveredAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// fromDomain converts an outbox message entity to its database representation.
func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          message.ID(),
		OrderID:     message.OrderID(),
		RoutingKey:  message.RoutingKey(),
		Payload:     message.Payload(),
		Attempts:    message.Attempts(),
		CreatedAt:   message.CreatedAt(),
		DeliveredAt: message.DeliveredAt(),
	}
}

// toDomain converts a database DTO to an outbox message entity.
func toDomain(dto MessageDTO) (*outbox.Message, error) {
	return outbox.RestoreMessage(
		dto.ID,
		dto.OrderID,
		dto.RoutingKey,
		dto.Payload,
		dto.Attempts,
		dto.CreatedAt,
		dto.DeliveredAt,
	)
}
