// Package metrics exports order processing outcomes to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "checkout"

// PrometheusMetrics implements ports.OrderMetrics on its own registry.
type PrometheusMetrics struct {
	registry    *prometheus.Registry
	processed   *prometheus.CounterVec
	stepFailed  *prometheus.CounterVec
	orderTotals *prometheus.HistogramVec
}

func NewPrometheusMetrics() *PrometheusMetrics {
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_processed_total",
		Help:      "Orders that reached the done status.",
	}, []string{"gateway"})
	stepFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "step_failures_total",
		Help:      "Processing steps that returned an error.",
	}, []string{"step"})
	orderTotals := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_total_amount",
		Help:      "Charged order totals.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"gateway"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(processed, stepFailed, orderTotals)

	return &PrometheusMetrics{
		registry:    registry,
		processed:   processed,
		stepFailed:  stepFailed,
		orderTotals: orderTotals,
	}
}

func (m *PrometheusMetrics) OrderProcessed(gateway string, total decimal.Decimal) {
	m.processed.WithLabelValues(gateway).Inc()
	m.orderTotals.WithLabelValues(gateway).Observe(total.InexactFloat64())
}

func (m *PrometheusMetrics) StepFailed(step string) {
	m.stepFailed.WithLabelValues(step).Inc()
}

// Handler serves the registry in the text exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}
