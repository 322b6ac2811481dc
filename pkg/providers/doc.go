// Package providers defines the AI backend abstraction used by the coach.
//
// # Overview
//
// A Provider exposes five coaching operations: GenerateProgram,
// GenerateChallenge, AdaptWorkout, GenerateDeloadOptions and
// AnalyzePerformance. Each backend (see the openai, anthropic and ollama
// subpackages) only translates a CompletionRequest into its own wire format;
// prompting, JSON extraction and normalization live here and are shared.
//
// # Architecture
//
//  1. Provider interface - the contract callers program against
//  2. HTTPProvider - JSON over HTTP with pooled connections and typed errors
//  3. Generator - runs an operation over any Completer
//  4. Backends - embed HTTPProvider and Generator, implement Complete
//  5. fallback.Provider - tries a primary backend, then a secondary
//
// # Basic Usage
//
//	p, err := openai.NewProvider(providers.ProviderConfig{
//	    APIKey: cfg.AI.OpenAI.APIKey,
//	    Model:  "gpt-4o",
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	program, err := p.GenerateProgram(ctx, profile, event, nil)
//
// Construction never reads the environment; credentials and endpoints are
// passed in explicitly (usually by package providerfactory).
//
// # Model Replies
//
// Replies are expected to be a single JSON object. DecodePayload tolerates
// markdown fences and surrounding prose, and makes one repair attempt on
// malformed JSON before giving up with a *ParseError. NormalizeProgram and
// MergeWorkout fill in the fields a reply may leave out.
//
// # Errors
//
// Every operation failure is an *OperationError wrapping one of:
//
//   - *ProviderError: the backend answered with a non-2xx status
//   - *TransportError: the request never got a response
//   - *ParseError: the reply could not be decoded
//
// ErrorType classifies any of these into a short label for metrics and spans.
// Failed calls are not retried.
//
// # Thread Safety
//
// Providers are safe for concurrent use.
package providers
