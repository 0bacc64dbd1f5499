package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	CarrierErrors     *prometheus.CounterVec
	EstimatesReturned *prometheus.HistogramVec
}

// NewMetrics creates Prometheus metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dhlbridge_requests_total",
				Help: "Total number of requests by operation, carrier, and status",
			},
			[]string{"operation", "carrier", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dhlbridge_request_duration_seconds",
				Help:    "Request duration in seconds by operation and carrier",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "carrier"},
		),
		CarrierErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dhlbridge_carrier_errors_total",
				Help: "Total carrier errors by carrier and error kind",
			},
			[]string{"carrier", "kind"},
		),
		EstimatesReturned: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dhlbridge_estimates_returned",
				Help:    "Number of rate estimates returned per successful quote",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
			},
			[]string{"carrier"},
		),
	}
}

// RecordRequest records a request metric.
func (m *Metrics) RecordRequest(operation, carrierName, status string, duration float64) {
	m.RequestsTotal.WithLabelValues(operation, carrierName, status).Inc()
	m.RequestDuration.WithLabelValues(operation, carrierName).Observe(duration)
}

// RecordError records a carrier error metric.
func (m *Metrics) RecordError(carrierName, kind string) {
	m.CarrierErrors.WithLabelValues(carrierName, kind).Inc()
}

// RecordEstimates records the size of a successful quote result.
func (m *Metrics) RecordEstimates(carrierName string, count int) {
	m.EstimatesReturned.WithLabelValues(carrierName).Observe(float64(count))
}
