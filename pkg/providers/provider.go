package providers

import (
	"context"
	"time"
)

// Provider is the capability contract every coaching backend implements.
// Callers obtain a Provider from the provider factory and never depend on
// which backend is active.
//
// Every operation performs exactly one outbound exchange with the backend,
// asks for a JSON object, and normalizes the reply into the returned record.
// Failures (transport, non-2xx status, malformed payload) are returned as an
// *OperationError naming the backend and the operation. Implementations do not
// retry; see package fallback for the one-hop retry against a second backend.
//
// Implementations hold no per-call mutable state and are safe for concurrent use.
//
// Example usage:
//
//	provider, err := factory.Create("openai")
//	if err != nil {
//	    return err
//	}
//
//	program, err := provider.GenerateProgram(ctx, profile, event, nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(program.ID, program.Status)
type Provider interface {
	// GenerateProgram synthesizes a periodized program for the profile and event.
	// pctx is optional. Missing identity, status, context and tracking fields
	// are filled with defaults (see NormalizeProgram).
	GenerateProgram(ctx context.Context, profile UserProfile, event TargetEvent, pctx *ProgramGenerationContext) (*Program, error)

	// GenerateChallenge creates a challenge. An empty challengeType means "general".
	GenerateChallenge(ctx context.Context, profile UserProfile, challengeType string) (*Challenge, error)

	// AdaptWorkout returns a copy of workout with the model's modifications
	// merged over it. Fields returned by the model overwrite the originals.
	AdaptWorkout(ctx context.Context, workout Workout, wctx WorkoutAdaptationContext) (*Workout, error)

	// GenerateDeloadOptions returns one or two reduced-load variants of the workout.
	// The result is an empty, non-nil slice when the model returns none.
	GenerateDeloadOptions(ctx context.Context, workout Workout, reason string) ([]DeloadOption, error)

	// AnalyzePerformance summarizes logged training against the program.
	AnalyzePerformance(ctx context.Context, profile UserProfile, data PerformanceData, program Program) (*PerformanceAnalysis, error)

	// GetName returns the backend name (e.g., "openai", "anthropic", "ollama").
	GetName() string
}

// Completer performs a single completion exchange against a backend and
// returns the normalized reply. Backend adapters implement it; Generator
// builds the five coaching operations on top of it.
type Completer interface {
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// CallObserver receives the outcome of every coaching operation.
// The metrics collector implements it.
type CallObserver interface {
	ObserveCall(provider, operation string, duration time.Duration, err error)
}
