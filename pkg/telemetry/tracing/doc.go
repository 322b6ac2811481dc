// Package tracing provides OpenTelemetry tracing for coach.
//
// New installs a global tracer provider that exports spans over OTLP/gRPC.
// Provider operations and the fallback decorator create their spans with
// otel.Tracer, so they are exported once New has run and are no-ops
// otherwise.
//
// # Span names
//
//   - provider.<operation>: one upstream exchange (client span)
//   - fallback.<operation>: a primary/secondary pair
//
// Attribute keys live in the "coach.*" namespace (see attributes.go).
//
// # Propagation
//
// Outgoing backend requests carry W3C traceparent/tracestate headers (Inject),
// so a collector in front of a self-hosted model can join the trace.
//
// # Sampling
//
//   - always: sample every trace
//   - never: sample nothing
//   - ratio: sample a fraction of traces by trace ID (sample_ratio)
//
// Samplers are parent-based: an incoming sampled context keeps its children sampled.
//
// # Usage
//
//	tracer, err := tracing.New(cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
package tracing
