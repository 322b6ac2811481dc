// Coach is a command-line harness for the AI coaching backends.
//
// It builds a backend (OpenAI, Anthropic or Ollama) from configuration and
// runs one coaching operation per invocation:
//   - Generate a periodized training program for an event
//   - Generate a training challenge
//   - Adapt a planned workout to current circumstances
//   - Propose deload variants of a workout
//   - Analyze logged training against a program
//
// Usage:
//
//	# Generate a program with the configured backend
//	coach program --profile athlete.json --event marathon.json
//
//	# Use Anthropic, falling back to Ollama if it fails
//	coach program -p anthropic --fallback --secondary ollama --profile athlete.json --event marathon.json
//
//	# Check whether a deload is due, then ask for options
//	coach deload --workout squat-day.json --logs sessions.json --last-deload 2025-05-01
//
//	# Validate configuration
//	coach config validate --config coach.yaml
//
//	# Show version information
//	coach version
package main

func main() {
	Execute()
}
