package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ChargeReceipt is what a gateway hands back for a successful charge.
type ChargeReceipt struct {
	Gateway       string
	TransactionID string
	Amount        decimal.Decimal
}

// PaymentGateway charges the final, already discounted total of an order.
type PaymentGateway interface {
	// Name is the human-readable gateway name used in receipts and journals ("PayPal").
	Name() string

	// Charge performs the external charge. An error means the customer was not
	// charged; the processor stops and does not compensate earlier steps.
	Charge(ctx context.Context, orderID kernel.UUID, total decimal.Decimal) (ChargeReceipt, error)
}
