package order

import (
	"errors"
	"slices"

	"checkout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned for orders that bypassed NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is a customer order moving through checkout.
//
// Invariants:
//   - id, email and country are valid value objects
//   - every item was built with NewItem; an empty item list is allowed and totals 0
//   - status only changes through Start and Finish
type Order struct {
	id      kernel.UUID
	email   kernel.Email
	items   []Item
	country kernel.Country
	status  Status

	isConstructed bool
}

// NewOrder creates an order in New status. All field errors are reported together.
//
//	price, _ := decimal.NewFromString("10.00")
//	item, _ := order.NewItem(price, 2)
//	o, err := order.NewOrder(kernel.NewUUID(), email, []order.Item{item}, country)
func NewOrder(id kernel.UUID, email kernel.Email, items []Item, country kernel.Country) (*Order, error) {
	return RestoreOrder(id, email, items, country, New)
}

// RestoreOrder rebuilds an order read back from storage in any valid status.
func RestoreOrder(
	id kernel.UUID,
	email kernel.Email,
	items []Item,
	country kernel.Country,
	status Status,
) (*Order, error) {
	o := &Order{isConstructed: true}
	if err := errors.Join(
		o.setID(id),
		o.setEmail(email),
		o.setItems(items),
		o.setCountry(country),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Email() kernel.Email {
	return o.email
}

// Items returns a copy of the order lines in their original order.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) Country() kernel.Country {
	return o.country
}

func (o *Order) Status() Status {
	return o.status
}

// Subtotal is Σ price × quantity over all lines, before any discount or fee.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Start marks the order as Processing. It fails unless the order is New,
// which is what stops the same order from being processed twice.
func (o *Order) Start() error {
	next, err := o.status.Start()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Finish marks the order as Done.
func (o *Order) Finish() error {
	next, err := o.status.Finish()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	o.email = email
	return nil
}

func (o *Order) setItems(items []Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setCountry(country kernel.Country) error {
	if err := country.Validate(); err != nil {
		return err
	}
	o.country = country
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
