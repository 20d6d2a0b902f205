// Package analytics reports "order done" events to an HTTP collector or a
// Kafka topic.
package analytics

import (
	"checkout/internal/core/domain/model/order"
)

const EventOrderDone = "order_done"

// Event is the payload both trackers send.
type Event struct {
	Event string `json:"event"`
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func orderDone(o *order.Order) Event {
	return Event{Event: EventOrderDone, ID: o.ID().String(), Value: 1}
}
