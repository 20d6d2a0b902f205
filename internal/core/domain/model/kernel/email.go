package kernel

import (
	"net/mail"
	"strings"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// ErrEmailIsNotConstructed is returned when validating a zero-value Email.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("email must be created via NewEmail")

// Email is the customer address confirmations are sent to.
type Email struct {
	address string
	guard   guard.ConstructorGuard
}

// NewEmail trims the input and accepts a bare RFC 5322 address ("a@b.ch").
// Display names ("Anna <a@b.ch>") are rejected so the stored value is always
// usable as an SMTP recipient.
func NewEmail(address string) (Email, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}

	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if parsed.Name != "" || parsed.Address != address {
		return Email{}, errs.NewValueIsInvalidError("email")
	}

	return Email{address: address, guard: guard.NewConstructorGuard()}, nil
}

func (e Email) String() string {
	return e.address
}

func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}
