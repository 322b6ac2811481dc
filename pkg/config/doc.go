// Package config provides configuration management for coach.
//
// Configuration is an explicit value: it is loaded once at the edge of the
// program and passed down (to the provider factory, the logger, the metrics
// collector and the tracer). Nothing below the CLI reads the process
// environment.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("coach.yaml")
//
//  2. From an optional YAML file plus the environment:
//     _ = config.LoadDotEnv()
//     cfg, err := config.Load("coach.yaml") // or config.Load("")
//
// # Environment Variables
//
// Backend settings use the conventional variable names:
//
//   - AI_PROVIDER, AI_FALLBACK_PROVIDER
//   - OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL
//   - ANTHROPIC_API_KEY, ANTHROPIC_BASE_URL, ANTHROPIC_MODEL
//   - OLLAMA_API_KEY, OLLAMA_BASE_URL, OLLAMA_MODEL
//
// Other settings follow COACH_SECTION_FIELD, e.g. COACH_AI_TIMEOUT or
// COACH_TELEMETRY_LOGGING_LEVEL. Environment variables always take precedence
// over file-based configuration. LoadDotEnv copies a .env file into the
// environment without overriding variables that are already set.
//
// # Configuration Precedence
//
//  1. Values from YAML file
//  2. Default values (defined in defaults.go) for anything left unset
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	ai:
//	  provider: openai
//	  fallback_provider: anthropic
//	  timeout: 90s
//	  ollama:
//	    base_url: http://gpu-box:11434
//	    model: llama3.1:70b
//
//	telemetry:
//	  logging:
//	    level: debug
//	    format: json
//	  tracing:
//	    enabled: true
//	    endpoint: localhost:4317
//	    otlp:
//	      insecure: true
package config
