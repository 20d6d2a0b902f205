package ports

import "github.com/shopspring/decimal"

// OrderMetrics receives processing outcomes for monitoring.
type OrderMetrics interface {
	// OrderProcessed is called once per order that reached Done.
	OrderProcessed(gateway string, total decimal.Decimal)

	// StepFailed is called when a processing step returns an error, including
	// the best-effort analytics step.
	StepFailed(step string)
}
