package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Name() string {
	return "PayPal"
}

func (m *MockPaymentGateway) Charge(ctx context.Context, id kernel.UUID, total decimal.Decimal) (ports.ChargeReceipt, error) {
	args := m.Called(ctx, id, total)
	return args.Get(0).(ports.ChargeReceipt), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order, total decimal.Decimal) error {
	args := m.Called(ctx, o, total)
	return args.Error(0)
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) Notify(ctx context.Context, o *order.Order, total decimal.Decimal) error {
	args := m.Called(ctx, o, total)
	return args.Error(0)
}

type MockAnalyticsService struct{ mock.Mock }

func (m *MockAnalyticsService) Track(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockBackupService struct{ mock.Mock }

func (m *MockBackupService) Backup(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockOrderMetrics struct{ mock.Mock }

func (m *MockOrderMetrics) OrderProcessed(gateway string, total decimal.Decimal) {
	m.Called(gateway, total)
}

func (m *MockOrderMetrics) StepFailed(step string) {
	m.Called(step)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// decimalEq matches a decimal by value, ignoring its internal exponent.
func decimalEq(s string) any {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func newTestOrder(t *testing.T, country string) *order.Order {
	t.Helper()
	email, err := kernel.NewEmail("anna@example.ch")
	require.NoError(t, err)
	c, err := kernel.NewCountry(country)
	require.NoError(t, err)
	item, err := order.NewItem(decimal.NewFromInt(10), 2)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), email, []order.Item{item}, c)
	require.NoError(t, err)
	return o
}
