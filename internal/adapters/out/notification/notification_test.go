package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/smtp"
	"testing"

	"checkout/internal/adapters/out/notification"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, country string) *order.Order {
	t.Helper()
	email, err := kernel.NewEmail("anna@example.ch")
	require.NoError(t, err)
	c, err := kernel.NewCountry(country)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), email, nil, c)
	require.NoError(t, err)
	return o
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestEmailNotification_Notify(t *testing.T) {
	t.Run("should send confirmation with the total", func(t *testing.T) {
		o := newOrder(t, "CH")
		var (
			gotAddr string
			gotFrom string
			gotTo   []string
			gotMsg  string
		)
		send := func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
			return nil
		}
		n := notification.NewEmailNotification("mail:25", discard(), notification.WithSendFunc(send))

		err := n.Notify(t.Context(), o, decimal.RequireFromString("19.6"))

		require.NoError(t, err)
		assert.Equal(t, "mail:25", gotAddr)
		assert.Equal(t, notification.DefaultSender, gotFrom)
		assert.Equal(t, []string{"anna@example.ch"}, gotTo)
		assert.Contains(t, gotMsg, "Subject: Order "+o.ID().String())
		assert.Contains(t, gotMsg, "Thanks! Your total is 19.60")
	})

	t.Run("should use a custom sender", func(t *testing.T) {
		var gotFrom string
		send := func(_ string, _ smtp.Auth, from string, _ []string, _ []byte) error {
			gotFrom = from
			return nil
		}
		n := notification.NewEmailNotification("mail:25", discard(),
			notification.WithSendFunc(send), notification.WithSender("shop@example.com"))

		require.NoError(t, n.Notify(t.Context(), newOrder(t, "DE"), decimal.NewFromInt(1)))
		assert.Equal(t, "shop@example.com", gotFrom)
	})

	t.Run("should wrap relay errors", func(t *testing.T) {
		relayErr := errors.New("connection refused")
		send := func(string, smtp.Auth, string, []string, []byte) error { return relayErr }
		n := notification.NewEmailNotification("mail:25", discard(), notification.WithSendFunc(send))

		err := n.Notify(t.Context(), newOrder(t, "DE"), decimal.NewFromInt(1))

		require.ErrorIs(t, err, relayErr)
		assert.Contains(t, err.Error(), "anna@example.ch")
	})

	t.Run("should not send for a cancelled context", func(t *testing.T) {
		called := false
		send := func(string, smtp.Auth, string, []string, []byte) error {
			called = true
			return nil
		}
		n := notification.NewEmailNotification("mail:25", discard(), notification.WithSendFunc(send))
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := n.Notify(ctx, newOrder(t, "DE"), decimal.NewFromInt(1))

		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("should reject an unconstructed order", func(t *testing.T) {
		n := notification.NewEmailNotification("mail:25", discard())

		err := n.Notify(t.Context(), &order.Order{}, decimal.Zero)

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(
	ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing,
) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestAmqpNotification_Notify(t *testing.T) {
	t.Run("should publish a persistent json event routed by country", func(t *testing.T) {
		o := newOrder(t, "CH")
		publisher := &MockPublisher{}
		var published amqp.Publishing
		publisher.On("PublishWithContext", mock.Anything, notification.ExchangeName, "order.confirmed.ch", false, false, mock.Anything).
			Run(func(args mock.Arguments) { published = args.Get(5).(amqp.Publishing) }).
			Return(nil).Once()
		n := notification.NewAmqpNotification(publisher, "", discard())

		err := n.Notify(t.Context(), o, decimal.RequireFromString("20.4"))

		require.NoError(t, err)
		publisher.AssertExpectations(t)
		assert.Equal(t, "application/json", published.ContentType)
		assert.Equal(t, amqp.Persistent, published.DeliveryMode)
		assert.Equal(t, o.ID().String(), published.MessageId)

		var body map[string]any
		require.NoError(t, json.Unmarshal(published.Body, &body))
		assert.Equal(t, o.ID().String(), body["order_id"])
		assert.Equal(t, "anna@example.ch", body["email"])
		assert.Equal(t, "CH", body["country"])
		assert.Equal(t, "20.4", body["total"])
	})

	t.Run("should publish to a configured exchange", func(t *testing.T) {
		publisher := &MockPublisher{}
		publisher.On("PublishWithContext", mock.Anything, "shop", "order.confirmed.worldwide", false, false, mock.Anything).
			Return(nil).Once()
		n := notification.NewAmqpNotification(publisher, "shop", discard())

		require.NoError(t, n.Notify(t.Context(), newOrder(t, "Worldwide"), decimal.Zero))
		publisher.AssertExpectations(t)
	})

	t.Run("should wrap broker errors", func(t *testing.T) {
		brokerErr := errors.New("channel closed")
		publisher := &MockPublisher{}
		publisher.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, false, false, mock.Anything).
			Return(brokerErr)
		n := notification.NewAmqpNotification(publisher, "", discard())

		err := n.Notify(t.Context(), newOrder(t, "AT"), decimal.Zero)

		require.ErrorIs(t, err, brokerErr)
		assert.Contains(t, err.Error(), "order.confirmed.at")
	})

	t.Run("should reject an unconstructed order", func(t *testing.T) {
		publisher := &MockPublisher{}
		n := notification.NewAmqpNotification(publisher, "", discard())

		require.ErrorIs(t, n.Notify(t.Context(), nil, decimal.Zero), order.ErrOrderIsNotConstructed)
		publisher.AssertNotCalled(t, "PublishWithContext")
	})
}
