package order

import (
	"errors"
	"fmt"

	"sales/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderIDAlreadyAssigned is returned when MarkPersisted is called on an order
	// that already carries a store-assigned identifier.
	ErrOrderIDAlreadyAssigned = errors.New("order ID is immutable once assigned")
)

// Order represents a customer's purchase request and its current lifecycle state.
// It is the aggregate root managing the order from creation (Pending) through
// confirmation or cancellation.
//
// Order follows these invariants:
//   - The identifier is assigned by the store on creation and immutable thereafter
//   - Customer name is non-empty
//   - Has at least one item at creation; items are immutable afterwards
//   - Status starts at Pending and changes only through ChangeStatus,
//     following the transition table defined on Status
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the store-assigned identifier; zero until the order is persisted
	id int64

	// customerName identifies the customer who placed the order
	customerName string

	// items are the order lines, fixed at creation
	items []Item

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation. This is the
// only way to create an order that has not been persisted yet; the identifier
// stays zero until the store assigns one via MarkPersisted.
//
// Returns a validation error if the customer name is empty, the item list is
// empty, or any item was not built through NewItem.
func NewOrder(customerName string, items []Item) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setCustomerName(customerName),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any valid status and requires a store-assigned identifier.
func RestoreOrder(id int64, customerName string, items []Item, status Status) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setStatus(status),
		order.setCustomerName(customerName),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := order.MarkPersisted(id); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory
// function. This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

// ID returns the order's store-assigned identifier, or zero if the order has
// not been persisted yet.
func (o *Order) ID() int64 {
	return o.id
}

// CustomerName returns the name of the customer who placed the order.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Items returns a copy of the order lines. The slice may be modified freely by
// the caller without affecting the aggregate.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// MarkPersisted records the identifier assigned by the store. The identifier
// can be assigned exactly once and must be positive.
func (o *Order) MarkPersisted(id int64) error {
	if o.id != 0 {
		return ErrOrderIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}

	o.id = id
	return nil
}

// ChangeStatus transitions the order to the given status.
//
// The transition is validated against the status transition table:
// Pending may become Confirmed or Cancelled, Confirmed may become Cancelled,
// and Cancelled is terminal.
//
// Returns an error if the transition is not allowed; the order is unchanged
// in that case.
func (o *Order) ChangeStatus(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setCustomerName validates and sets the customer name.
// This is a private method used only during construction.
func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}

// setItems validates and sets the order lines. At least one item is required
// and every item must have been built through NewItem.
// This is a private method used only during construction.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// setStatus validates and sets the status during restoration from persistence.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
