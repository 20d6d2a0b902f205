package discount

import (
	"fmt"
	"strings"

	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Method is how the customer pays. It selects both the pricing Policy and the
// payment gateway when a processor is assembled.
type Method string

const (
	MethodNone       Method = "none"
	MethodPaypal     Method = "paypal"
	MethodCreditCard Method = "credit-card"
	MethodPromo      Method = "promo"
)

// ParseMethod accepts the names above in any case.
func ParseMethod(name string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(name)))
	switch m {
	case MethodNone, MethodPaypal, MethodCreditCard, MethodPromo:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", name))
	}
}

// ForMethod returns the policy for a payment method. promoRate is only read
// for MethodPromo.
func ForMethod(method Method, promoRate decimal.Decimal) (Policy, error) {
	switch method {
	case MethodNone:
		return NoDiscount{}, nil
	case MethodPaypal:
		return PaypalDiscount{}, nil
	case MethodCreditCard:
		return CreditCardFee{}, nil
	case MethodPromo:
		promo, err := NewPromoDiscount(promoRate)
		if err != nil {
			return nil, err
		}
		return promo, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", method))
	}
}
