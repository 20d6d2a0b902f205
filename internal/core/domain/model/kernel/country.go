package kernel

import (
	"fmt"
	"strings"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// ErrCountryIsNotConstructed is returned when validating a zero-value Country.
var ErrCountryIsNotConstructed = errs.NewValueIsRequiredError("country must be created via NewCountry")

const (
	countryMinLength = 2
	countryMaxLength = 16
)

// Country is the shipping destination of an order. Two-letter ISO codes are
// upper-cased ("ch" -> "CH"); longer region names keep their spelling
// ("Worldwide"). Whether a country is served is decided by services.CountryPolicy,
// not here.
type Country struct {
	code  string
	guard guard.ConstructorGuard
}

func NewCountry(code string) (Country, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Country{}, errs.NewValueIsRequiredError("country")
	}
	if len(code) < countryMinLength || len(code) > countryMaxLength {
		return Country{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"country length", len(code), countryMinLength, countryMaxLength,
			fmt.Errorf("%q is not a country code", code),
		)
	}
	if len(code) == countryMinLength {
		code = strings.ToUpper(code)
	}

	return Country{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (c Country) Code() string {
	return c.code
}

func (c Country) String() string {
	return c.code
}

// IsEqual compares codes case-insensitively.
func (c Country) IsEqual(other Country) bool {
	return strings.EqualFold(c.code, other.code)
}

func (c Country) Validate() error {
	return c.guard.Validate(ErrCountryIsNotConstructed)
}
