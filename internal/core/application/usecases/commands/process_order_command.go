package commands

import (
	"errors"

	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/guard"
)

var ErrProcessOrderCommandIsNotConstructed = errors.New(
	"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
)

// ProcessOrderCommand asks for one order to be priced, charged and recorded.
//
//	cmd, err := NewProcessOrderCommand(o)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type ProcessOrderCommand struct { //nolint:recvcheck //using for validation
	order *order.Order

	guard guard.ConstructorGuard
}

// NewProcessOrderCommand wraps a constructed order in New status.
func NewProcessOrderCommand(o *order.Order) (ProcessOrderCommand, error) {
	cmd := ProcessOrderCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setOrder(o); err != nil {
		return ProcessOrderCommand{}, err
	}
	return cmd, nil
}

func (c ProcessOrderCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
}

// Order returns the order the command acts on. The handler mutates its status.
func (c ProcessOrderCommand) Order() *order.Order {
	return c.order
}

func (c *ProcessOrderCommand) setOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, err := o.Status().Start(); err != nil {
		return err
	}
	c.order = o
	return nil
}
