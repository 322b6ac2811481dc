// Package metrics provides Prometheus metrics for provider calls.
//
// # Metrics
//
// With the default namespace "coach" and subsystem "ai":
//
//   - coach_ai_provider_requests_total{provider,operation,status}
//   - coach_ai_provider_latency_seconds{provider,operation}
//   - coach_ai_provider_errors_total{provider,error_type}
//   - coach_ai_fallback_total{primary,secondary,operation}
//
// # Usage
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	factory := providerfactory.New(cfg.AI, providerfactory.WithObserver(collector))
//
//	// ... run operations ...
//
//	if path := cfg.Telemetry.Metrics.TextfilePath; path != "" {
//	    _ = collector.WriteToTextfile(path)
//	}
//
// The CLI runs one operation per process, so metrics are exported through the
// node_exporter textfile format rather than a scrape endpoint.
package metrics
