package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"checkout/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

const (
	ExchangeName = "checkout.orders"
	ExchangeType = "topic"
)

// Publisher is the part of *amqp.Channel used for publishing.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type orderConfirmed struct {
	OrderID string          `json:"order_id"`
	Email   string          `json:"email"`
	Country string          `json:"country"`
	Total   decimal.Decimal `json:"total"`
}

// AmqpNotification publishes an order.confirmed event that a mailer service
// consumes. The routing key is order.confirmed.<country>.
type AmqpNotification struct {
	publisher Publisher
	exchange  string
	logger    *slog.Logger
}

func NewAmqpNotification(publisher Publisher, exchange string, logger *slog.Logger) *AmqpNotification {
	if exchange == "" {
		exchange = ExchangeName
	}
	return &AmqpNotification{
		publisher: publisher,
		exchange:  exchange,
		logger:    logger.With("component", "amqp_notification"),
	}
}

func (n *AmqpNotification) Notify(ctx context.Context, o *order.Order, total decimal.Decimal) error {
	if err := o.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(orderConfirmed{
		OrderID: o.ID().String(),
		Email:   o.Email().String(),
		Country: o.Country().Code(),
		Total:   total,
	})
	if err != nil {
		return fmt.Errorf("could not marshal confirmation: %w", err)
	}

	routingKey := RoutingKey(o)
	err = n.publisher.PublishWithContext(ctx, n.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    o.ID().String(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	n.logger.InfoContext(ctx, "Confirmation published", "order_id", o.ID().String(), "routing_key", routingKey)
	return nil
}

func RoutingKey(o *order.Order) string {
	return "order.confirmed." + strings.ToLower(o.Country().Code())
}

// Dial connects to RabbitMQ and declares the durable topic exchange. The
// caller owns and closes both the connection and the channel.
func Dial(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	if exchange == "" {
		exchange = ExchangeName
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,     // name
		ExchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("could not declare exchange: %w", err)
	}

	return conn, ch, nil
}
