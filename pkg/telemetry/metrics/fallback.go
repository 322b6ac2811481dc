package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"forgefit/coach/pkg/config"
)

// FallbackMetrics tracks operations served by a secondary provider.
//
// Metrics:
//   - coach_ai_fallback_total: fallbacks by primary, secondary and operation
type FallbackMetrics struct {
	fallbacks *prometheus.CounterVec
}

// NewFallbackMetrics creates and registers fallback metrics with the provided registry.
func NewFallbackMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *FallbackMetrics {
	fm := &FallbackMetrics{
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "fallback_total",
				Help:      "Total number of operations retried on the secondary provider",
			},
			[]string{"primary", "secondary", "operation"},
		),
	}

	registry.MustRegister(fm.fallbacks)

	return fm
}

// RecordFallback counts one fallback.
func (fm *FallbackMetrics) RecordFallback(primary, secondary, operation string) {
	fm.fallbacks.WithLabelValues(primary, secondary, operation).Inc()
}
