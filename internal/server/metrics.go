package server

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	Evaluations     *prometheus.CounterVec
	FieldErrors     *prometheus.CounterVec
	EndpointLatency *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// Each server owns its registry so several instances can coexist in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: config.MetricEvaluations,
			Help: "Total number of age evaluations, labeled by outcome",
		}, []string{config.MetricLabelOutcome}),
		FieldErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: config.MetricFieldErrors,
			Help: "Total number of rejected input fields, labeled by field and error kind",
		}, []string{config.MetricLabelField, config.MetricLabelKind}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    config.MetricLatency,
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{config.MetricLabelEndpoint}),
	}
}

// RecordOutcome counts one evaluation. A nil error is a success.
func (m *Metrics) RecordOutcome(err error) {
	if err == nil {
		m.Evaluations.WithLabelValues(config.OutcomeOK).Inc()
		return
	}

	var verrs engine.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	if verrs.Future {
		m.Evaluations.WithLabelValues(config.OutcomeFuture).Inc()
		return
	}

	m.Evaluations.WithLabelValues(config.OutcomeInvalid).Inc()
	for field, kind := range verrs.Fields {
		m.FieldErrors.WithLabelValues(string(field), kind.String()).Inc()
	}
}

// ObserveLatency records the time elapsed since start for endpoint.
func (m *Metrics) ObserveLatency(endpoint string, start time.Time) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
