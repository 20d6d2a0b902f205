package ports

import (
	"context"

	"checkout/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// NotificationService confirms a processed order to the customer.
type NotificationService interface {
	Notify(ctx context.Context, o *order.Order, total decimal.Decimal) error
}
