package http

import (
	"time"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ItemRequest struct {
	Price decimal.Decimal `json:"price"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity,omitempty"`
}

type ProcessOrderRequest struct {
	Email         string              `json:"email"`
	Country       string              `json:"country"`
	PaymentMethod string              `json:"payment_method"`
	PromoRate     decimal.NullDecimal `json:"promo_rate"`
	Items         []ItemRequest       `json:"items"`
}

type ProcessOrderResponse struct {
	ID                 string          `json:"id"`
	Status             string          `json:"status"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Total              decimal.Decimal `json:"total"`
	Gateway            string          `json:"gateway"`
	TransactionID      string          `json:"transaction_id"`
	AnalyticsDelivered bool            `json:"analytics_delivered"`
	AnalyticsError     string          `json:"analytics_error,omitempty"`
	Journal            []string        `json:"journal"`
}

// ProcessingFailure is returned with 502 when a collaborator failed after the
// order was accepted. Journal lists the steps that did complete.
type ProcessingFailure struct {
	Error
	ID      string   `json:"id"`
	Status  string   `json:"status"`
	Journal []string `json:"journal"`
}

type ProcessedOrder struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Total   decimal.Decimal `json:"total"`
	Email   string          `json:"email,omitempty"`
	Country string          `json:"country,omitempty"`
	SavedAt *time.Time      `json:"saved_at,omitempty"`
}
