package ports

import (
	"context"

	"checkout/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderRepository records a processed order together with the total charged.
// The total is not part of the Order entity, so it travels alongside it.
type OrderRepository interface {
	Save(ctx context.Context, o *order.Order, total decimal.Decimal) error
}
