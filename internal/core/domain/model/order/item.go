package order

import (
	"errors"
	"fmt"

	"sales/internal/pkg/errs"
	"sales/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory function.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a value object representing a single order line: a reference to an
// external product and the quantity ordered. The product is not validated for
// existence here; product ownership belongs to a separate catalog service.
//
// Item is immutable after construction.
type Item struct {
	productID int64
	quantity  int

	guard guard.ConstructorGuard
}

// NewItem creates an order line for the given product and quantity.
// Quantity must be positive.
func NewItem(productID int64, quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return Item{
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the referenced product's identifier.
func (i Item) ProductID() int64 {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}
