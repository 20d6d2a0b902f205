package commands

import (
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"

	"github.com/shopspring/decimal"
)

// AnalyticsOutcome records the best-effort analytics step. Err is the
// swallowed error when Delivered is false.
type AnalyticsOutcome struct {
	Delivered bool
	Err       error
}

// ProcessOrderResult describes one processing run.
//
// On failure the handler still returns the result so far: Status shows where the
// order stopped and Charge is set once the customer has been charged.
type ProcessOrderResult struct {
	OrderID   kernel.UUID
	Status    order.Status
	Subtotal  decimal.Decimal
	Total     decimal.Decimal
	Charge    ports.ChargeReceipt
	Analytics AnalyticsOutcome
	// Journal lists completed steps in execution order, e.g.
	// "Charged via PayPal: 19.6", "Order saved", "Analytics posted".
	Journal []string
}

func (r *ProcessOrderResult) record(line string) {
	r.Journal = append(r.Journal, line)
}
