package providers

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"forgefit/coach/pkg/telemetry/tracing"
)

// tracerName identifies spans created by provider operations.
const tracerName = "forgefit/coach/providers"

// Generator implements the five coaching operations on top of a Completer.
// Backend adapters embed it next to HTTPProvider so that only the request and
// response envelopes differ between backends.
//
// Generator holds only construction-time values and is safe for concurrent use.
type Generator struct {
	config    ProviderConfig
	completer Completer
	logger    *slog.Logger
}

// NewGenerator creates a Generator that sends requests through completer.
// A nil logger uses slog.Default().
func NewGenerator(completer Completer, config ProviderConfig, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		config:    config,
		completer: completer,
		logger:    logger.With("provider", config.Name),
	}
}

// GenerateProgram implements Provider.
func (g *Generator) GenerateProgram(ctx context.Context, profile UserProfile, event TargetEvent, pctx *ProgramGenerationContext) (*Program, error) {
	var payload programPayload
	if err := g.run(ctx, OpGenerateProgram, ProgramPrompt(profile, event, pctx), &payload, nil); err != nil {
		return nil, err
	}

	program := NormalizeProgram(payload.toProgram(), event, time.Now())
	if program.UserID == "" {
		program.UserID = profile.ID
	}
	return program, nil
}

// GenerateChallenge implements Provider.
func (g *Generator) GenerateChallenge(ctx context.Context, profile UserProfile, challengeType string) (*Challenge, error) {
	if challengeType == "" {
		challengeType = DefaultChallengeType
	}

	var challenge Challenge
	if err := g.run(ctx, OpGenerateChallenge, ChallengePrompt(profile, challengeType), &challenge, nil); err != nil {
		return nil, err
	}

	if challenge.Type == "" {
		challenge.Type = challengeType
	}
	return &challenge, nil
}

// AdaptWorkout implements Provider.
func (g *Generator) AdaptWorkout(ctx context.Context, workout Workout, wctx WorkoutAdaptationContext) (*Workout, error) {
	var (
		patch   map[string]any
		adapted *Workout
	)
	merge := func() error {
		// Some models nest the result under a "workout" key.
		if nested, ok := patch["workout"].(map[string]any); ok {
			delete(patch, "workout")
			for key, value := range patch {
				if _, exists := nested[key]; !exists {
					nested[key] = value
				}
			}
			patch = nested
		}

		merged, err := MergeWorkout(workout, patch)
		if err != nil {
			return &ParseError{Provider: g.config.Name, Cause: err}
		}
		adapted = merged
		return nil
	}

	if err := g.run(ctx, OpAdaptWorkout, AdaptWorkoutPrompt(workout, wctx), &patch, merge); err != nil {
		return nil, err
	}
	return adapted, nil
}

// GenerateDeloadOptions implements Provider.
func (g *Generator) GenerateDeloadOptions(ctx context.Context, workout Workout, reason string) ([]DeloadOption, error) {
	var payload struct {
		DeloadOptions []DeloadOption `json:"deload_options"`
	}
	if err := g.run(ctx, OpGenerateDeloadOptions, DeloadPrompt(workout, reason), &payload, nil); err != nil {
		return nil, err
	}

	if payload.DeloadOptions == nil {
		return []DeloadOption{}, nil
	}
	return payload.DeloadOptions, nil
}

// AnalyzePerformance implements Provider.
func (g *Generator) AnalyzePerformance(ctx context.Context, profile UserProfile, data PerformanceData, program Program) (*PerformanceAnalysis, error) {
	var analysis PerformanceAnalysis
	if err := g.run(ctx, OpAnalyzePerformance, AnalysisPrompt(profile, data, program), &analysis, nil); err != nil {
		return nil, err
	}

	if analysis.Insights == nil {
		analysis.Insights = []string{}
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}
	return &analysis, nil
}

// run performs one completion exchange and decodes the JSON payload into v.
// A non-nil finish runs after decoding, inside the span and the observed
// call, so its failure is reported like any other.
// Every failure is returned as *OperationError.
func (g *Generator) run(ctx context.Context, operation string, prompt Prompt, v any, finish func() error) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "provider."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()
	tracing.SetProviderAttributes(span, g.config.Name, g.config.Model, operation)

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		if g.config.Observer != nil {
			g.config.Observer.ObserveCall(g.config.Name, operation, duration, err)
		}
		if err != nil {
			tracing.SetErrorAttributes(span, err, ErrorType(err))
			g.logger.DebugContext(ctx, "provider operation failed",
				"operation", operation,
				"duration", duration,
				"error", err,
			)
			return
		}
		tracing.SetOK(span)
		g.logger.DebugContext(ctx, "provider operation completed",
			"operation", operation,
			"duration", duration,
		)
	}()

	req := &CompletionRequest{
		Operation:   operation,
		Model:       g.config.Model,
		System:      prompt.System,
		Messages:    []Message{{Role: RoleUser, Content: prompt.User}},
		Temperature: g.config.Temperature,
		MaxTokens:   g.config.MaxTokens,
		JSONMode:    true,
	}

	resp, err := g.completer.Complete(ctx, req)
	if err != nil {
		return &OperationError{Provider: g.config.Name, Operation: operation, Err: err}
	}

	tracing.SetTokenAttributes(span, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if err := DecodePayload(g.config.Name, resp.Content, v); err != nil {
		return &OperationError{Provider: g.config.Name, Operation: operation, Err: err}
	}

	if finish != nil {
		if err := finish(); err != nil {
			return &OperationError{Provider: g.config.Name, Operation: operation, Err: err}
		}
	}

	return nil
}
