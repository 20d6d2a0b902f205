package payment_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"checkout/internal/adapters/out/payment"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services/discount"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaypalGateway_Charge(t *testing.T) {
	var buf bytes.Buffer
	g := payment.NewPaypalGateway(slog.New(slog.NewTextHandler(&buf, nil)))
	id := kernel.NewUUID()

	receipt, err := g.Charge(t.Context(), id, decimal.RequireFromString("19.6"))

	require.NoError(t, err)
	assert.Equal(t, "PayPal", g.Name())
	assert.Equal(t, "PayPal", receipt.Gateway)
	assert.True(t, strings.HasPrefix(receipt.TransactionID, "pp_"))
	assert.True(t, receipt.Amount.Equal(decimal.RequireFromString("19.6")))
	assert.Contains(t, buf.String(), "amount=19.60")
	assert.Contains(t, buf.String(), id.String())
}

func TestCreditCardGateway_Charge(t *testing.T) {
	g := payment.NewCreditCardGateway(slog.New(slog.DiscardHandler))

	t.Run("should mint distinct transaction ids", func(t *testing.T) {
		first, err := g.Charge(t.Context(), kernel.NewUUID(), decimal.NewFromInt(1))
		require.NoError(t, err)
		second, err := g.Charge(t.Context(), kernel.NewUUID(), decimal.NewFromInt(1))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(first.TransactionID, "cc_"))
		assert.NotEqual(t, first.TransactionID, second.TransactionID)
	})

	t.Run("should reject negative totals", func(t *testing.T) {
		_, err := g.Charge(t.Context(), kernel.NewUUID(), decimal.NewFromInt(-5))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero order id", func(t *testing.T) {
		_, err := g.Charge(t.Context(), kernel.UUID{}, decimal.NewFromInt(5))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestForMethod(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	for method, name := range map[discount.Method]string{
		discount.MethodPaypal:     "PayPal",
		discount.MethodPromo:      "PayPal",
		discount.MethodNone:       "PayPal",
		discount.MethodCreditCard: "Credit Card",
	} {
		g, err := payment.ForMethod(method, logger)
		require.NoError(t, err)
		assert.Equal(t, name, g.Name(), string(method))
	}

	_, err := payment.ForMethod(discount.Method("cash"), logger)
	require.Error(t, err)
}
