package ports

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ProcessedOrder is the read model of a saved order. Adapters that store less
// than the full order leave Email, Country and SavedAt empty.
type ProcessedOrder struct {
	ID      kernel.UUID
	Status  order.Status
	Total   decimal.Decimal
	Email   string
	Country string
	SavedAt time.Time
}

// ProcessedOrderReader lists what an OrderRepository has saved, newest first.
type ProcessedOrderReader interface {
	ListProcessed(ctx context.Context, limit int) ([]ProcessedOrder, error)
}
