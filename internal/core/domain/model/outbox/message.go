package outbox

import (
	"encoding/json"
	"errors"
	"time"

	"sales/internal/core/domain/model/order"
	"sales/internal/pkg/errs"

	"github.com/google/uuid"
)

// RoutingKeyOrderCreated is the broker routing key for order-creation announcements.
const RoutingKeyOrderCreated = "order.created"

var (
	// ErrMessageIsNotConstructed is returned when a Message instance was not created
	// through a factory function.
	ErrMessageIsNotConstructed = errors.New("Message must be created via NewOrderCreatedMessage or RestoreMessage constructor")

	// ErrOrderIsNotPersisted is returned when building an announcement for an order
	// that has no store-assigned identifier yet. The wire event carries the order id,
	// so the order must be persisted first.
	ErrOrderIsNotPersisted = errors.New("order must be persisted before it can be announced")
)

// Message is an outbox entry: a domain event captured in the same transaction as
// the state change it announces, dispatched to the broker afterwards. Messages
// are retried until marked delivered, giving at-least-once delivery.
type Message struct {
	id          uuid.UUID
	orderID     int64
	routingKey  string
	payload     []byte
	attempts    int
	createdAt   time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// orderCreatedEvent is the wire projection of an order for the order.created
// announcement. Field names follow the established contract with downstream
// consumers; the event never carries the order status.
type orderCreatedEvent struct {
	OrderID      int64            `json:"OrderId"`
	CustomerName string           `json:"CustomerName"`
	Items        []orderItemEvent `json:"Items"`
}

type orderItemEvent struct {
	ProductID int64 `json:"ProductId"`
	Quantity  int   `json:"Quantity"`
}

// NewOrderCreatedMessage builds the order.created announcement for a persisted
// order. The payload is the UTF-8 JSON projection of the order (id, customer,
// items) and is fixed at construction time.
func NewOrderCreatedMessage(o *order.Order) (*Message, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.ID() == 0 {
		return nil, ErrOrderIsNotPersisted
	}

	items := make([]orderItemEvent, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, orderItemEvent{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
		})
	}

	payload, err := json.Marshal(orderCreatedEvent{
		OrderID:      o.ID(),
		CustomerName: o.CustomerName(),
		Items:        items,
	})
	if err != nil {
		return nil, err
	}

	return &Message{
		id:            uuid.New(),
		orderID:       o.ID(),
		routingKey:    RoutingKeyOrderCreated,
		payload:       payload,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstructs a Message from persistence.
func RestoreMessage(
	id uuid.UUID,
	orderID int64,
	routingKey string,
	payload []byte,
	attempts int,
	createdAt time.Time,
	deliveredAt *time.Time,
) (*Message, error) {
	if id == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if routingKey == "" {
		return nil, errs.NewValueIsRequiredError("routingKey")
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &Message{
		id:            id,
		orderID:       orderID,
		routingKey:    routingKey,
		payload:       payload,
		attempts:      attempts,
		createdAt:     createdAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Message was created through a factory function.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

// ID returns the message identifier.
func (m *Message) ID() uuid.UUID {
	return m.id
}

// OrderID returns the identifier of the announced order.
func (m *Message) OrderID() int64 {
	return m.orderID
}

// RoutingKey returns the broker routing key for the message.
func (m *Message) RoutingKey() string {
	return m.routingKey
}

// Payload returns a copy of the serialized event body.
func (m *Message) Payload() []byte {
	payload := make([]byte, len(m.payload))
	copy(payload, m.payload)
	return payload
}

// Attempts returns how many delivery attempts have failed so far.
func (m *Message) Attempts() int {
	return m.attempts
}

// CreatedAt returns when the message was captured.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// DeliveredAt returns when the message was handed to the broker, or nil if it
// is still pending.
func (m *Message) DeliveredAt() *time.Time {
	return m.deliveredAt
}

// Delivered reports whether the message has been handed to the broker.
func (m *Message) Delivered() bool {
	return m.deliveredAt != nil
}
