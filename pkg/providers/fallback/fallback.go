package fallback

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"

	"forgefit/coach/pkg/providers"
	"forgefit/coach/pkg/telemetry/tracing"
)

const tracerName = "forgefit/coach/providers/fallback"

// Observer is notified every time a call falls through to the secondary.
// The metrics collector implements it.
type Observer interface {
	ObserveFallback(primary, secondary, operation string)
}

// Provider wraps a primary and a secondary provider behind the same contract.
// Each operation is tried on the primary; on any failure it is retried once,
// with the same arguments, on the secondary. The secondary's result or error
// is returned as is. There is never a third attempt.
//
// The two providers are fixed at construction and never swapped.
type Provider struct {
	primary   providers.Provider
	secondary providers.Provider
	logger    *slog.Logger
	observer  Observer
}

// Option configures a fallback Provider.
type Option func(*Provider)

// WithLogger sets the logger used to report primary failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithObserver sets the observer notified on every fallback.
func WithObserver(observer Observer) Option {
	return func(p *Provider) {
		p.observer = observer
	}
}

// New wraps primary and secondary. Both must be non-nil.
func New(primary, secondary providers.Provider, opts ...Option) *Provider {
	if primary == nil || secondary == nil {
		panic("fallback: primary and secondary providers are required")
	}

	p := &Provider{
		primary:   primary,
		secondary: secondary,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetName returns "primary->secondary".
func (p *Provider) GetName() string {
	return p.primary.GetName() + "->" + p.secondary.GetName()
}

// Primary returns the provider tried first.
func (p *Provider) Primary() providers.Provider {
	return p.primary
}

// Secondary returns the provider tried after a primary failure.
func (p *Provider) Secondary() providers.Provider {
	return p.secondary
}

// Close closes both wrapped providers that hold resources.
func (p *Provider) Close() error {
	var errs []error
	for _, inner := range []providers.Provider{p.primary, p.secondary} {
		if c, ok := inner.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// GenerateProgram implements providers.Provider.
func (p *Provider) GenerateProgram(ctx context.Context, profile providers.UserProfile, event providers.TargetEvent, pctx *providers.ProgramGenerationContext) (*providers.Program, error) {
	return call(ctx, p, providers.OpGenerateProgram, func(ctx context.Context, target providers.Provider) (*providers.Program, error) {
		return target.GenerateProgram(ctx, profile, event, pctx)
	})
}

// GenerateChallenge implements providers.Provider.
func (p *Provider) GenerateChallenge(ctx context.Context, profile providers.UserProfile, challengeType string) (*providers.Challenge, error) {
	return call(ctx, p, providers.OpGenerateChallenge, func(ctx context.Context, target providers.Provider) (*providers.Challenge, error) {
		return target.GenerateChallenge(ctx, profile, challengeType)
	})
}

// AdaptWorkout implements providers.Provider.
func (p *Provider) AdaptWorkout(ctx context.Context, workout providers.Workout, wctx providers.WorkoutAdaptationContext) (*providers.Workout, error) {
	return call(ctx, p, providers.OpAdaptWorkout, func(ctx context.Context, target providers.Provider) (*providers.Workout, error) {
		return target.AdaptWorkout(ctx, workout, wctx)
	})
}

// GenerateDeloadOptions implements providers.Provider.
func (p *Provider) GenerateDeloadOptions(ctx context.Context, workout providers.Workout, reason string) ([]providers.DeloadOption, error) {
	return call(ctx, p, providers.OpGenerateDeloadOptions, func(ctx context.Context, target providers.Provider) ([]providers.DeloadOption, error) {
		return target.GenerateDeloadOptions(ctx, workout, reason)
	})
}

// AnalyzePerformance implements providers.Provider.
func (p *Provider) AnalyzePerformance(ctx context.Context, profile providers.UserProfile, data providers.PerformanceData, program providers.Program) (*providers.PerformanceAnalysis, error) {
	return call(ctx, p, providers.OpAnalyzePerformance, func(ctx context.Context, target providers.Provider) (*providers.PerformanceAnalysis, error) {
		return target.AnalyzePerformance(ctx, profile, data, program)
	})
}

// call runs fn against the primary and, if that fails, once against the secondary.
func call[T any](ctx context.Context, p *Provider, operation string, fn func(context.Context, providers.Provider) (T, error)) (T, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "fallback."+operation)
	defer span.End()

	result, err := fn(ctx, p.primary)
	if err == nil {
		tracing.SetFallbackAttributes(span, p.primary.GetName(), p.secondary.GetName(), false)
		tracing.SetOK(span)
		return result, nil
	}

	p.logger.WarnContext(ctx, "primary provider failed, falling back",
		"operation", operation,
		"primary", p.primary.GetName(),
		"secondary", p.secondary.GetName(),
		"error", err,
	)
	if p.observer != nil {
		p.observer.ObserveFallback(p.primary.GetName(), p.secondary.GetName(), operation)
	}
	tracing.SetFallbackAttributes(span, p.primary.GetName(), p.secondary.GetName(), true)

	result, err = fn(ctx, p.secondary)
	if err != nil {
		tracing.SetErrorAttributes(span, err, providers.ErrorType(err))
		return result, err
	}

	tracing.SetOK(span)
	return result, nil
}
