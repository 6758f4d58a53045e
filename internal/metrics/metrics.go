// Package metrics holds the Prometheus collectors for burger orders. A CLI
// run is too short to be scraped, so the registry is exported to a textfile
// for the node exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const (
	OutcomeSuccess   = "success"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
	OutcomeRejected  = "rejected"
)

type Metrics struct {
	Registry *prometheus.Registry

	OrdersAssembled *prometheus.CounterVec
	OrdersSaved     *prometheus.CounterVec
	LastPrice       prometheus.Gauge
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		OrdersAssembled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "burger",
				Subsystem: "orders",
				Name:      "assembled_total",
				Help:      "Burger assembly attempts by outcome.",
			},
			[]string{"outcome"},
		),
		OrdersSaved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "burger",
				Subsystem: "orders",
				Name:      "saved_total",
				Help:      "Burger save attempts by outcome.",
			},
			[]string{"outcome"},
		),
		LastPrice: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "burger",
				Name:      "last_order_price",
				Help:      "Tax-inclusive price of the most recently assembled burger.",
			},
		),
	}
	m.Registry.MustRegister(m.OrdersAssembled, m.OrdersSaved, m.LastPrice)
	return m
}

func (m *Metrics) OrderAssembled(outcome string) {
	m.OrdersAssembled.WithLabelValues(outcome).Inc()
}

func (m *Metrics) OrderSaved(outcome string) {
	m.OrdersSaved.WithLabelValues(outcome).Inc()
}

// ObservePrice records the price of the latest assembled order.
func (m *Metrics) ObservePrice(price decimal.Decimal) {
	m.LastPrice.Set(price.InexactFloat64())
}

// WriteTextfile writes the registry to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
