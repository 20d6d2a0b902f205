package services

import (
	"errors"
	"fmt"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// ErrUnsupportedCountry is wrapped by Check for destinations outside the policy.
var ErrUnsupportedCountry = errors.New("unsupported country, cannot proceed")

// ErrCountryPolicyIsNotConstructed is returned for policies that bypassed NewCountryPolicy.
var ErrCountryPolicyIsNotConstructed = errors.New("CountryPolicy must be created via NewCountryPolicy constructor")

// DefaultCountries are the destinations served when nothing else is configured.
var DefaultCountries = []string{"CH", "DE", "AT", "EU", "Worldwide"}

// CountryPolicy is an allow-list of destinations. It is built once from
// configuration and injected into the order processor.
type CountryPolicy struct {
	allowed []kernel.Country
	guard   guard.ConstructorGuard
}

// NewCountryPolicy parses every code; an empty list is rejected because it
// would refuse every order.
func NewCountryPolicy(codes []string) (CountryPolicy, error) {
	if len(codes) == 0 {
		return CountryPolicy{}, errs.NewValueIsRequiredError("supported countries")
	}

	allowed := make([]kernel.Country, 0, len(codes))
	var err error
	for _, code := range codes {
		country, cErr := kernel.NewCountry(code)
		if cErr != nil {
			err = errors.Join(err, cErr)
			continue
		}
		allowed = append(allowed, country)
	}
	if err != nil {
		return CountryPolicy{}, err
	}

	return CountryPolicy{allowed: allowed, guard: guard.NewConstructorGuard()}, nil
}

func (p CountryPolicy) Validate() error {
	return p.guard.Validate(ErrCountryPolicyIsNotConstructed)
}

// Check returns nil when country is served, otherwise an errs.ValueIsInvalidError
// wrapping ErrUnsupportedCountry.
func (p CountryPolicy) Check(country kernel.Country) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := country.Validate(); err != nil {
		return err
	}
	for _, allowed := range p.allowed {
		if allowed.IsEqual(country) {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"country",
		fmt.Errorf("%s: %w", country, ErrUnsupportedCountry),
	)
}

func (p CountryPolicy) String() string {
	codes := make([]string, 0, len(p.allowed))
	for _, c := range p.allowed {
		codes = append(codes, c.Code())
	}
	return strings.Join(codes, ",")
}
