package commands

import (
	"errors"
	"fmt"

	"sales/internal/core/domain/model/order"
	"sales/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired = errors.New("customer name is required")
	ErrItemsAreRequired       = errors.New("at least one item is required")
	ErrQuantityIsInvalid      = errors.New("quantity must be greater than 0")
)

// CreateOrderItem is one requested order line within a CreateOrderCommand.
type CreateOrderItem struct {
	ProductID int64
	Quantity  int
}

// CreateOrderCommand represents a request to create a new sales order.
// Encapsulates the customer identity and the requested order lines.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("Test Customer", []CreateOrderItem{{ProductID: 1, Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, outboxUoWFactory, publisher)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerName string
	items        []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new sales order.
// Validates that the customer name is not empty, at least one item is present,
// and every quantity is positive. Returns an error if any validation fails.
func NewCreateOrderCommand(customerName string, items []CreateOrderItem) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setCustomerName(customerName),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerName returns the name of the customer placing the order.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	items := make([]CreateOrderItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for i, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("items[%d]: %w", i, ErrQuantityIsInvalid)
		}
	}

	c.items = make([]CreateOrderItem, len(items))
	copy(c.items, items)
	return nil
}

// domainItems converts the requested lines into order.Item value objects.
func (c CreateOrderCommand) domainItems() ([]order.Item, error) {
	items := make([]order.Item, 0, len(c.items))
	for _, item := range c.items {
		domainItem, err := order.NewItem(item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, domainItem)
	}
	return items, nil
}
