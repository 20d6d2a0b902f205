// Package queries contains read-only operations over saved orders.
package queries

import (
	"errors"
	"fmt"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

const (
	DefaultProcessedOrdersLimit = 50
	MaxProcessedOrdersLimit     = 500
)

var ErrGetProcessedOrdersQueryIsNotConstructed = errors.New(
	"GetProcessedOrdersQuery must be created via NewGetProcessedOrdersQuery constructor",
)

// GetProcessedOrdersQuery lists the most recently saved orders.
//
//	query, _ := NewGetProcessedOrdersQuery(20)
//	orders, err := handler.Handle(ctx, query)
type GetProcessedOrdersQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewGetProcessedOrdersQuery uses DefaultProcessedOrdersLimit when limit is 0.
func NewGetProcessedOrdersQuery(limit int) (GetProcessedOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultProcessedOrdersLimit
	}
	if limit < 1 || limit > MaxProcessedOrdersLimit {
		return GetProcessedOrdersQuery{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"limit", limit, 1, MaxProcessedOrdersLimit, fmt.Errorf("limit %d is not allowed", limit))
	}
	return GetProcessedOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProcessedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetProcessedOrdersQueryIsNotConstructed)
}

func (q GetProcessedOrdersQuery) Limit() int {
	return q.limit
}
