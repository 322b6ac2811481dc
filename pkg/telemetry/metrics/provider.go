package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"forgefit/coach/pkg/config"
)

// ProviderMetrics tracks backend calls.
//
// Metrics (with the default namespace and subsystem):
//   - coach_ai_provider_requests_total: operations by provider, operation and status
//   - coach_ai_provider_latency_seconds: operation latency by provider and operation
//   - coach_ai_provider_errors_total: failures by provider and error type
type ProviderMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewProviderMetrics creates and registers provider metrics with the provided registry.
func NewProviderMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *ProviderMetrics {
	pm := &ProviderMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_requests_total",
				Help:      "Total number of coaching operations sent to each provider",
			},
			[]string{"provider", "operation", "status"},
		),

		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_latency_seconds",
				Help:      "Provider operation latency in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"provider", "operation"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_errors_total",
				Help:      "Total number of provider errors by type",
			},
			[]string{"provider", "error_type"},
		),
	}

	registry.MustRegister(
		pm.requests,
		pm.latency,
		pm.errors,
	)

	return pm
}

// RecordRequest counts one operation.
func (pm *ProviderMetrics) RecordRequest(provider, operation, status string) {
	pm.requests.WithLabelValues(provider, operation, status).Inc()
}

// RecordLatency records the latency of one operation.
func (pm *ProviderMetrics) RecordLatency(provider, operation string, latencySeconds float64) {
	pm.latency.WithLabelValues(provider, operation).Observe(latencySeconds)
}

// RecordError records an error from a provider.
//
// Error types follow providers.ErrorType:
//   - "auth": Authentication/authorization error
//   - "rate_limit": Provider rate limit exceeded
//   - "server_error": Provider server error (5xx)
//   - "client_error": Client error (4xx)
//   - "network": Network connectivity error
//   - "parse": Response parsing error
func (pm *ProviderMetrics) RecordError(provider, errorType string) {
	pm.errors.WithLabelValues(provider, errorType).Inc()
}
