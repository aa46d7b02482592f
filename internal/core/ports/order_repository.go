package ports

import (
	"context"

	"sales/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All operations are durable before returning and atomic at single-order
// granularity.
type OrderRepository interface {
	// Add persists a new order aggregate and assigns its identifier.
	// The aggregate carries the store-assigned id after a successful call.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus moves the order with the given id from one status to
	// another as a single compare-and-swap: the write only happens while the
	// stored status still equals from. Returns updated=false (not an error)
	// when the id does not exist or the stored status no longer matches,
	// which is how a concurrent transition loses the race instead of
	// overwriting it. The error return is reserved for infrastructure
	// failures. Transition legality is the command layer's responsibility.
	UpdateStatus(ctx context.Context, id int64, from, to order.Status) (bool, error)

	// Get retrieves an order aggregate by its identifier, including its items.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetAll retrieves all orders. Iteration order is by identifier.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
