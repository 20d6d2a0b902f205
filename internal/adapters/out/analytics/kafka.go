package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"checkout/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the tracker needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaAnalytics writes events keyed by order id so that all events of one
// order land on the same partition.
type KafkaAnalytics struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewKafkaAnalytics(writer MessageWriter, logger *slog.Logger) *KafkaAnalytics {
	return &KafkaAnalytics{writer: writer, logger: logger.With("component", "kafka_analytics")}
}

func (a *KafkaAnalytics) Track(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	value, err := json.Marshal(orderDone(o))
	if err != nil {
		return err
	}

	msg := kafka.Message{Key: []byte(o.ID().String()), Value: value, Time: time.Now().UTC()}
	if err := a.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write analytics event: %w", err)
	}

	a.logger.DebugContext(ctx, "Analytics event written", "order_id", o.ID().String())
	return nil
}

// NewWriter builds a writer for a comma separated broker list.
func NewWriter(brokersCSV, topic string) *kafka.Writer {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}
