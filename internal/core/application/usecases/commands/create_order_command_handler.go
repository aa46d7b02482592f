package commands

import (
	"context"
	"errors"
	"fmt"

	"sales/internal/core/domain/model/order"
	"sales/internal/core/domain/model/outbox"
	"sales/internal/core/ports"
)

// ErrAnnouncementPending signals partial success of order creation: the order
// was durably committed but the immediate publish to the broker failed. The
// announcement stays in the outbox and the background dispatcher will retry it.
// Callers must not treat this as full success.
var ErrAnnouncementPending = errors.New("order committed but announcement is pending broker delivery")

// CreateOrderCommandHandler handles the business logic for order creation.
// This is the single entry point for inserting orders: it writes the order in
// Pending status together with its order.created announcement in one
// transaction, then attempts to hand the announcement to the broker.
//
// The commit always precedes the publish. On publish failure the order stays
// committed and Handle returns the created order alongside
// ErrAnnouncementPending; the outbox dispatcher retries delivery.
type CreateOrderCommandHandler struct {
	uowFactory       UoWFactory
	outboxUoWFactory OutboxUoWFactory
	publisher        ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory spanning the order and outbox repositories, a separate
// OutboxUoWFactory for the post-publish bookkeeping, and the event publisher.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	outboxUoWFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:       uowFactory,
		outboxUoWFactory: outboxUoWFactory,
		publisher:        publisher,
	}
}

// Handle processes the order creation command.
//
// Returns the created order (always in Pending status, carrying its
// store-assigned id). The error is nil on full success, wraps
// ErrAnnouncementPending on commit-without-announcement, and the order is nil
// on any failure before the commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := cmd.domainItems()
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(cmd.CustomerName(), items)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	message, err := outbox.NewOrderCreatedMessage(newOrder)
	if err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.publisher.Publish(ctx, message.RoutingKey(), message.Payload()); err != nil {
		return newOrder, fmt.Errorf("%w: %w", ErrAnnouncementPending, err)
	}

	// Best effort: a failure here only means the dispatcher re-sends the
	// message later, which at-least-once delivery already allows.
	h.markDelivered(ctx, message)

	return newOrder, nil
}

func (h *CreateOrderCommandHandler) markDelivered(ctx context.Context, message *outbox.Message) {
	uow := h.outboxUoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OutboxRepository().MarkDelivered(ctx, message.ID()); err != nil {
		return
	}

	_ = uow.Commit(ctx)
}
