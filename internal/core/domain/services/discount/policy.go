// Package discount holds the interchangeable pricing strategies applied to an
// order subtotal. Every Policy is a pure function of its input: no I/O, no
// failure modes, the same input always yields the same output.
package discount

import (
	"fmt"

	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Policy adjusts a subtotal into the amount that gets charged.
type Policy interface {
	Apply(total decimal.Decimal) decimal.Decimal
}

var (
	paypalFactor     = decimal.RequireFromString("0.98")
	creditCardFactor = decimal.RequireFromString("1.02")
)

// NoDiscount returns the subtotal unchanged.
type NoDiscount struct{}

func (NoDiscount) Apply(total decimal.Decimal) decimal.Decimal {
	return total
}

// PaypalDiscount takes 2% off.
type PaypalDiscount struct{}

func (PaypalDiscount) Apply(total decimal.Decimal) decimal.Decimal {
	return total.Mul(paypalFactor)
}

// CreditCardFee adds a 2% card fee.
type CreditCardFee struct{}

func (CreditCardFee) Apply(total decimal.Decimal) decimal.Decimal {
	return total.Mul(creditCardFactor)
}

// PromoDiscount takes rate off, where rate is a fraction in [0, 1].
type PromoDiscount struct {
	rate decimal.Decimal
}

func NewPromoDiscount(rate decimal.Decimal) (PromoDiscount, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return PromoDiscount{}, errs.NewValueIsOutOfRangeError("promo rate", rate, 0, 1)
	}
	return PromoDiscount{rate: rate}, nil
}

func (p PromoDiscount) Rate() decimal.Decimal {
	return p.rate
}

func (p PromoDiscount) Apply(total decimal.Decimal) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(1).Sub(p.rate))
}

// ExportTariff surcharges subtotals strictly above threshold by rate
// (threshold 1000, rate 0.39 adds 39% to a 1200 order). Amounts at or below the
// threshold pass through.
type ExportTariff struct {
	threshold decimal.Decimal
	rate      decimal.Decimal
}

func NewExportTariff(threshold, rate decimal.Decimal) (ExportTariff, error) {
	if threshold.IsNegative() {
		return ExportTariff{}, errs.NewValueIsInvalidErrorWithCause(
			"tariff threshold", fmt.Errorf("%s is negative", threshold))
	}
	if rate.IsNegative() {
		return ExportTariff{}, errs.NewValueIsInvalidErrorWithCause(
			"tariff rate", fmt.Errorf("%s is negative", rate))
	}
	return ExportTariff{threshold: threshold, rate: rate}, nil
}

func (t ExportTariff) Apply(total decimal.Decimal) decimal.Decimal {
	if !total.GreaterThan(t.threshold) {
		return total
	}
	return total.Mul(decimal.NewFromInt(1).Add(t.rate))
}

// Chain applies policies left to right. An empty chain behaves like NoDiscount.
type Chain []Policy

func (c Chain) Apply(total decimal.Decimal) decimal.Decimal {
	for _, p := range c {
		total = p.Apply(total)
	}
	return total
}
