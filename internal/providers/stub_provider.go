package providers

import (
	"context"
	"errors"
	"sync"

	"forgefit/coach/pkg/providers"
)

// StubProvider is a deterministic implementation of providers.Provider for
// testing decorators and the CLI. It never touches the network.
//
// When Err is set every operation fails with it; otherwise each operation
// returns a fixed result tagged with the stub's name.
type StubProvider struct {
	name string

	mu    sync.Mutex
	err   error
	calls map[string]int
}

// NewStubProvider creates a stub that always succeeds.
func NewStubProvider(name string) *StubProvider {
	return &StubProvider{
		name:  name,
		calls: make(map[string]int),
	}
}

// NewFailingStubProvider creates a stub whose operations always fail with err.
// A nil err uses a generic error naming the stub.
func NewFailingStubProvider(name string, err error) *StubProvider {
	if err == nil {
		err = errors.New(name + " unavailable")
	}
	s := NewStubProvider(name)
	s.err = err
	return s
}

// SetError changes the failure mode. A nil err makes the stub succeed.
func (s *StubProvider) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls returns how many times operation was invoked.
func (s *StubProvider) Calls(operation string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[operation]
}

// TotalCalls returns the number of invocations across all operations.
func (s *StubProvider) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// record counts the call and returns the configured error.
func (s *StubProvider) record(operation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[operation]++
	if s.err != nil {
		return &providers.OperationError{Provider: s.name, Operation: operation, Err: s.err}
	}
	return nil
}

// GetName returns the stub's name.
func (s *StubProvider) GetName() string {
	return s.name
}

// GenerateProgram returns a minimal normalized program.
func (s *StubProvider) GenerateProgram(ctx context.Context, profile providers.UserProfile, event providers.TargetEvent, pctx *providers.ProgramGenerationContext) (*providers.Program, error) {
	if err := s.record(providers.OpGenerateProgram); err != nil {
		return nil, err
	}
	p := &providers.Program{
		ID:     s.name + "-program",
		UserID: profile.ID,
		Name:   s.name + " program",
	}
	return providers.NormalizeProgram(p, event, fixedTime), nil
}

// GenerateChallenge returns a fixed challenge.
func (s *StubProvider) GenerateChallenge(ctx context.Context, profile providers.UserProfile, challengeType string) (*providers.Challenge, error) {
	if err := s.record(providers.OpGenerateChallenge); err != nil {
		return nil, err
	}
	if challengeType == "" {
		challengeType = providers.DefaultChallengeType
	}
	return &providers.Challenge{
		Name:        s.name + " challenge",
		Type:        challengeType,
		TargetDate:  "2025-01-31",
		Description: "stub challenge",
	}, nil
}

// AdaptWorkout returns the workout with adaptation notes naming the stub.
func (s *StubProvider) AdaptWorkout(ctx context.Context, workout providers.Workout, wctx providers.WorkoutAdaptationContext) (*providers.Workout, error) {
	if err := s.record(providers.OpAdaptWorkout); err != nil {
		return nil, err
	}
	adapted := workout
	adapted.AdaptationNotes = "adapted by " + s.name
	return &adapted, nil
}

// GenerateDeloadOptions returns a single volume deload.
func (s *StubProvider) GenerateDeloadOptions(ctx context.Context, workout providers.Workout, reason string) ([]providers.DeloadOption, error) {
	if err := s.record(providers.OpGenerateDeloadOptions); err != nil {
		return nil, err
	}
	return []providers.DeloadOption{
		{
			Type:          "volume",
			Description:   s.name + " deload",
			Modifications: map[string]any{"sets_multiplier": 0.5},
		},
	}, nil
}

// AnalyzePerformance returns a fixed analysis.
func (s *StubProvider) AnalyzePerformance(ctx context.Context, profile providers.UserProfile, data providers.PerformanceData, program providers.Program) (*providers.PerformanceAnalysis, error) {
	if err := s.record(providers.OpAnalyzePerformance); err != nil {
		return nil, err
	}
	return &providers.PerformanceAnalysis{
		Insights:        []string{s.name + " insight"},
		Recommendations: []string{s.name + " recommendation"},
	}, nil
}
