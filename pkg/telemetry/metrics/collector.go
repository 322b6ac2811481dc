package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"forgefit/coach/pkg/config"
	"forgefit/coach/pkg/providers"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Collector records provider call outcomes and fallback events in a
// Prometheus registry. It implements providers.CallObserver and
// fallback.Observer, so the provider factory can attach it to every provider
// it builds.
//
// A disabled collector accepts every call and records nothing.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	providerMetrics *ProviderMetrics
	fallbackMetrics *FallbackMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	factory := providerfactory.New(cfg.AI, providerfactory.WithObserver(collector))
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		providerMetrics: NewProviderMetrics(cfg, registry),
		fallbackMetrics: NewFallbackMetrics(cfg, registry),
	}
}

// ObserveCall records one coaching operation against a backend.
//
// Parameters:
//   - provider: backend name (e.g., "openai", "ollama")
//   - operation: coaching operation (e.g., "generate_program")
//   - duration: wall time of the single upstream exchange
//   - err: the operation error, nil on success
func (c *Collector) ObserveCall(provider, operation string, duration time.Duration, err error) {
	if !c.config.IsEnabled() {
		return
	}

	status := StatusSuccess
	if err != nil {
		status = StatusError
		c.providerMetrics.RecordError(provider, providers.ErrorType(err))
	}
	c.providerMetrics.RecordRequest(provider, operation, status)
	c.providerMetrics.RecordLatency(provider, operation, duration.Seconds())
}

// ObserveFallback records that an operation fell through from primary to secondary.
func (c *Collector) ObserveFallback(primary, secondary, operation string) {
	if !c.config.IsEnabled() {
		return
	}

	c.fallbackMetrics.RecordFallback(primary, secondary, operation)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
