package config

import "time"

// Default values for configuration fields.
const (
	// AI defaults
	DefaultAITimeout     = 60 * time.Second
	DefaultAITemperature = 0.7
	DefaultAIMaxTokens   = 4096

	// Logging defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultLoggingRedactSecrets = true

	// Metrics defaults
	DefaultMetricsNamespace = "coach"
	DefaultMetricsSubsystem = "ai"

	// Tracing defaults
	DefaultTracingSampler     = "ratio"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "coach"
	DefaultOTLPTimeout        = 10 * time.Second
)

// DefaultDurationBuckets are latency buckets sized for LLM generation calls.
var DefaultDurationBuckets = []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120}

// ApplyDefaults fills zero-valued fields with their defaults.
// The default provider name is left empty; the factory resolves it.
func ApplyDefaults(cfg *Config) {
	applyAIDefaults(&cfg.AI)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyAIDefaults(cfg *AIConfig) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultAITimeout
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultAITemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultAIMaxTokens
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Logging.RedactSecrets == nil {
		v := DefaultLoggingRedactSecrets
		cfg.Logging.RedactSecrets = &v
	}

	if cfg.Metrics.Enabled == nil {
		v := true
		cfg.Metrics.Enabled = &v
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}

	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.SampleRatio == 0 && cfg.Tracing.Sampler == DefaultTracingSampler {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Tracing.OTLP.Timeout == 0 {
		cfg.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}
