package commands

import (
	"context"

	"sales/internal/core/domain/model/outbox"
	"sales/internal/core/ports"
)

// DispatchOutboxCommandHandler drains pending announcements from the outbox.
//
// For each pending message, oldest first, the handler publishes the stored
// payload under its routing key and marks it delivered. A failed publish
// increments the attempt counter and moves on to the next message; the
// message is retried on the following sweep. Within a single sweep messages
// are published in capture order.
//
// The sweep never holds a database transaction across broker calls: the
// pending batch is read and committed first, and each delivery mark runs in
// its own short transaction. A crash between publish and mark only re-sends
// the message, which at-least-once delivery already allows.
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

// NewDispatchOutboxCommandHandler creates a handler for outbox dispatch sweeps.
func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes one dispatch sweep and returns the number of messages
// successfully handed to the broker.
func (h *DispatchOutboxCommandHandler) Handle(ctx context.Context, cmd DispatchOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	messages, err := h.loadPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, message := range messages {
		if publishErr := h.publisher.Publish(ctx, message.RoutingKey(), message.Payload()); publishErr != nil {
			if err = h.markFailed(ctx, message); err != nil {
				return delivered, err
			}
			continue
		}

		if err = h.markDelivered(ctx, message); err != nil {
			return delivered, err
		}
		delivered++
	}

	return delivered, nil
}

// loadPending reads the pending batch in a transaction of its own, committed
// before any publish starts.
func (h *DispatchOutboxCommandHandler) loadPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	messages, err := uow.OutboxRepository().GetUndelivered(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return messages, nil
}

func (h *DispatchOutboxCommandHandler) markDelivered(ctx context.Context, message *outbox.Message) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OutboxRepository().MarkDelivered(ctx, message.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *DispatchOutboxCommandHandler) markFailed(ctx context.Context, message *outbox.Message) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OutboxRepository().MarkFailed(ctx, message.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
