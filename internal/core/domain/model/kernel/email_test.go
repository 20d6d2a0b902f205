package kernel_test

import (
	"testing"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("should accept and trim a bare address", func(t *testing.T) {
		email, err := kernel.NewEmail("  anna@example.ch ")

		require.NoError(t, err)
		require.NoError(t, email.Validate())
		assert.Equal(t, "anna@example.ch", email.String())
	})

	t.Run("should require a value", func(t *testing.T) {
		_, err := kernel.NewEmail("   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject malformed address", func(t *testing.T) {
		_, err := kernel.NewEmail("anna.example.ch")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject display names", func(t *testing.T) {
		_, err := kernel.NewEmail("Anna <anna@example.ch>")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var email kernel.Email

		assert.Equal(t, kernel.ErrEmailIsNotConstructed, email.Validate())
	})
}
