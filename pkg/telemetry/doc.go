// Package telemetry groups the observability packages used by coach.
//
//   - logging: slog construction with secret redaction and context fields
//   - metrics: Prometheus counters and histograms for provider calls and fallbacks
//   - tracing: OpenTelemetry tracer bootstrap, span attributes, W3C propagation
//
// Each package is configured from config.TelemetryConfig and is optional:
// providers work with the default slog logger, no metrics observer and the
// global no-op tracer.
package telemetry
