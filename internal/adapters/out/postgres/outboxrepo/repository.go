package outboxrepo

import (
	"context"
	"errors"
	"time"

	"sales/internal/core/domain/model/outbox"
	"sales/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add saves a new outbox message to the database.
func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUndelivered retrieves up to limit messages that have not been delivered
// yet, in capture order. The store-assigned sequence is the sort key:
// created_at can carry equal timestamps for messages written in the same
// instant, and tie-breaking on a random message id would shuffle them.
func (r *GormOutboxRepository) GetUndelivered(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("delivered_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// MarkDelivered stamps the message with the delivery time. Delivered
// messages are never picked up again.
func (r *GormOutboxRepository) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", id).
		Update("delivered_at", time.Now().UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id)
	}

	return nil
}

// MarkFailed increments the attempt counter for a message whose publish
// failed. The message stays undelivered and will be retried.
func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id)
	}

	return nil
}

// Get retrieves a single outbox message by its identifier.
func (r *GormOutboxRepository) Get(ctx context.Context, id uuid.UUID) (*outbox.Message, error) {
	var dto MessageDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("outbox message", id)
		}
		return nil, err
	}

	return toDomain(dto)
}
