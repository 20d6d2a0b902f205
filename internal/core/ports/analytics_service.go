package ports

import (
	"context"

	"checkout/internal/core/domain/model/order"
)

// AnalyticsService reports an "order done" event. Delivery is best effort:
// the processor records a failure but does not abort the order because of it.
type AnalyticsService interface {
	Track(ctx context.Context, o *order.Order) error
}
