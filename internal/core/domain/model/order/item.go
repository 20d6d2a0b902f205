package order

import (
	"errors"
	"fmt"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned for Item values that bypassed NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line. Price is per unit.
type Item struct {
	price    decimal.Decimal
	quantity int
	guard    guard.ConstructorGuard
}

// NewItem validates that price is not negative and quantity is at least 1.
func NewItem(price decimal.Decimal, quantity int) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}
	if err := errors.Join(item.setPrice(price), item.setQuantity(quantity)); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Price() decimal.Decimal {
	return i.price
}

func (i Item) Quantity() int {
	return i.quantity
}

// LineTotal is price × quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}
