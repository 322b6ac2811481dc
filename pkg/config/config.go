package config

import "time"

// Config is the root configuration structure for coach.
// It contains the AI backend selection and credentials plus telemetry settings.
type Config struct {
	// AI contains backend selection, per-backend credentials and request tuning.
	AI AIConfig `yaml:"ai"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// AIConfig is the explicit configuration handed to the provider factory.
// Backends never read the process environment themselves.
type AIConfig struct {
	// Provider is the default backend name used when none is requested.
	// Options: "openai", "anthropic", "ollama"
	// Default: "" (the factory falls back to "openai")
	Provider string `yaml:"provider"`

	// FallbackProvider is the secondary backend used by CreateWithFallback
	// when no secondary is named explicitly.
	FallbackProvider string `yaml:"fallback_provider"`

	// Timeout bounds each outbound HTTP exchange.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// Temperature is the sampling temperature sent with every request.
	// Default: 0.7
	Temperature float64 `yaml:"temperature"`

	// MaxTokens caps generated output.
	// Default: 4096
	MaxTokens int `yaml:"max_tokens"`

	// OpenAI contains OpenAI backend settings.
	OpenAI BackendConfig `yaml:"openai"`

	// Anthropic contains Anthropic backend settings.
	Anthropic BackendConfig `yaml:"anthropic"`

	// Ollama contains Ollama backend settings.
	Ollama BackendConfig `yaml:"ollama"`
}

// BackendConfig contains the settings of one backend.
type BackendConfig struct {
	// APIKey is the backend credential. Construction fails without it.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the backend's default endpoint.
	BaseURL string `yaml:"base_url"`

	// Model overrides the backend's default model.
	Model string `yaml:"model"`
}

// Backend returns the settings for the named backend.
func (c AIConfig) Backend(name string) (BackendConfig, bool) {
	switch name {
	case "openai":
		return c.OpenAI, true
	case "anthropic":
		return c.Anthropic, true
	case "ollama":
		return c.Ollama, true
	default:
		return BackendConfig{}, false
	}
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactSecrets masks API keys and bearer tokens in log attributes.
	// Default: true
	RedactSecrets *bool `yaml:"redact_secrets"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "coach"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "ai"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for operation latency (seconds).
	// Default: [0.5, 1, 2.5, 5, 10, 20, 30, 60, 120]
	DurationBuckets []float64 `yaml:"duration_buckets"`

	// TextfilePath, when set, is where the CLI writes metrics in the
	// Prometheus text format after each command.
	TextfilePath string `yaml:"textfile_path"`
}

// IsEnabled reports whether metrics are enabled (nil means the default, true).
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "coach"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
