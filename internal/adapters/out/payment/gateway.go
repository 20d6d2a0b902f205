// Package payment provides the PayPal and credit card gateways. Both are
// stand-ins for the providers' APIs: they validate the amount, log the charge and
// mint a transaction id.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services/discount"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// gateway is shared by the concrete gateways; only the name and prefix differ.
type gateway struct {
	name   string
	prefix string
	logger *slog.Logger
}

func (g gateway) charge(ctx context.Context, orderID kernel.UUID, total decimal.Decimal) (ports.ChargeReceipt, error) {
	if err := orderID.Validate(); err != nil {
		return ports.ChargeReceipt{}, err
	}
	if total.IsNegative() {
		return ports.ChargeReceipt{}, errs.NewValueIsInvalidErrorWithCause(
			"charge amount", fmt.Errorf("%s is negative", total))
	}

	receipt := ports.ChargeReceipt{
		Gateway:       g.name,
		TransactionID: g.prefix + "_" + uuid.NewString(),
		Amount:        total,
	}
	g.logger.InfoContext(ctx, "Charged",
		"order_id", orderID.String(),
		"amount", total.StringFixed(2),
		"transaction_id", receipt.TransactionID,
	)
	return receipt, nil
}

// PaypalGateway charges through PayPal.
type PaypalGateway struct {
	gateway
}

func NewPaypalGateway(logger *slog.Logger) *PaypalGateway {
	return &PaypalGateway{gateway{name: "PayPal", prefix: "pp", logger: logger.With("component", "paypal_gateway")}}
}

func (g *PaypalGateway) Name() string {
	return g.name
}

func (g *PaypalGateway) Charge(ctx context.Context, orderID kernel.UUID, total decimal.Decimal) (ports.ChargeReceipt, error) {
	return g.charge(ctx, orderID, total)
}

// CreditCardGateway charges the customer's card.
type CreditCardGateway struct {
	gateway
}

func NewCreditCardGateway(logger *slog.Logger) *CreditCardGateway {
	return &CreditCardGateway{gateway{name: "Credit Card", prefix: "cc", logger: logger.With("component", "credit_card_gateway")}}
}

func (g *CreditCardGateway) Name() string {
	return g.name
}

func (g *CreditCardGateway) Charge(ctx context.Context, orderID kernel.UUID, total decimal.Decimal) (ports.ChargeReceipt, error) {
	return g.charge(ctx, orderID, total)
}

// ForMethod picks the gateway for a payment method. Promo and undiscounted
// orders are settled through PayPal.
func ForMethod(method discount.Method, logger *slog.Logger) (ports.PaymentGateway, error) {
	switch method {
	case discount.MethodPaypal, discount.MethodPromo, discount.MethodNone:
		return NewPaypalGateway(logger), nil
	case discount.MethodCreditCard:
		return NewCreditCardGateway(logger), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q has no gateway", method))
	}
}
