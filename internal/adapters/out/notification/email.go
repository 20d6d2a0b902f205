// Package notification confirms processed orders to customers, either by
// e-mail over SMTP or by publishing an event to RabbitMQ.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"checkout/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

const DefaultSender = "noreply@example.com"

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotification sends a plain-text confirmation through an SMTP relay.
type EmailNotification struct {
	addr   string
	auth   smtp.Auth
	from   string
	send   SendFunc
	logger *slog.Logger
}

type EmailOption func(*EmailNotification)

// WithAuth enables PLAIN authentication against the relay.
func WithAuth(username, password, host string) EmailOption {
	return func(n *EmailNotification) {
		if username != "" {
			n.auth = smtp.PlainAuth("", username, password, host)
		}
	}
}

func WithSender(from string) EmailOption {
	return func(n *EmailNotification) {
		if from != "" {
			n.from = from
		}
	}
}

func WithSendFunc(send SendFunc) EmailOption {
	return func(n *EmailNotification) {
		n.send = send
	}
}

func NewEmailNotification(addr string, logger *slog.Logger, opts ...EmailOption) *EmailNotification {
	n := &EmailNotification{
		addr:   addr,
		from:   DefaultSender,
		send:   smtp.SendMail,
		logger: logger.With("component", "email_notification"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *EmailNotification) Notify(ctx context.Context, o *order.Order, total decimal.Decimal) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	to := o.Email().String()
	if err := n.send(n.addr, n.auth, n.from, []string{to}, confirmationMessage(o, total)); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", to, err)
	}

	n.logger.InfoContext(ctx, "Confirmation e-mail sent", "order_id", o.ID().String(), "to", to)
	return nil
}

func confirmationMessage(o *order.Order, total decimal.Decimal) []byte {
	return fmt.Appendf(nil, "Subject: Order %s\r\n\r\nThanks! Your total is %s\r\n",
		o.ID().String(), total.StringFixed(2))
}
