package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span Attribute Helpers
//
// These functions set the attributes shared by every provider span so that
// attribute naming stays consistent across backends.
//
// Custom attribute keys use the "coach.*" namespace:
//   - coach.provider: backend name
//   - coach.model: model identifier
//   - coach.operation: coaching operation
//   - coach.tokens.*: token counts
//   - coach.fallback.*: fallback hop details

// Common attribute keys used throughout the system
const (
	// Provider attributes
	AttrProvider  = "coach.provider"
	AttrModel     = "coach.model"
	AttrOperation = "coach.operation"

	// Request attributes
	AttrRequestID = "coach.request_id"
	AttrUser      = "coach.user"

	// Token attributes
	AttrTokensPrompt     = "coach.tokens.prompt"
	AttrTokensCompletion = "coach.tokens.completion"
	AttrTokensTotal      = "coach.tokens.total"

	// Fallback attributes
	AttrFallbackPrimary   = "coach.fallback.primary"
	AttrFallbackSecondary = "coach.fallback.secondary"
	AttrFallbackUsed      = "coach.fallback.used"

	// Error attributes
	AttrErrorType    = "coach.error.type"
	AttrErrorMessage = "error.message"

	// Performance attributes
	AttrDuration = "coach.duration_ms"
)

// SetProviderAttributes sets provider-related attributes on a span.
//
// Example:
//
//	SetProviderAttributes(span, "openai", "gpt-4o", "generate_program")
func SetProviderAttributes(span trace.Span, provider, model, operation string) {
	span.SetAttributes(
		attribute.String(AttrProvider, provider),
		attribute.String(AttrModel, model),
		attribute.String(AttrOperation, operation),
	)
}

// SetRequestAttributes sets request-related attributes on a span.
// Empty values are skipped.
func SetRequestAttributes(span trace.Span, requestID, user string) {
	var attrs []attribute.KeyValue
	if requestID != "" {
		attrs = append(attrs, attribute.String(AttrRequestID, requestID))
	}
	if user != "" {
		attrs = append(attrs, attribute.String(AttrUser, user))
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

// SetTokenAttributes sets token count attributes on a span.
//
// Example:
//
//	SetTokenAttributes(span, 1500, 500)
func SetTokenAttributes(span trace.Span, promptTokens, completionTokens int) {
	span.SetAttributes(
		attribute.Int(AttrTokensPrompt, promptTokens),
		attribute.Int(AttrTokensCompletion, completionTokens),
		attribute.Int(AttrTokensTotal, promptTokens+completionTokens),
	)
}

// SetFallbackAttributes records which backends a fallback call involved and
// whether the secondary had to be used.
func SetFallbackAttributes(span trace.Span, primary, secondary string, used bool) {
	span.SetAttributes(
		attribute.String(AttrFallbackPrimary, primary),
		attribute.String(AttrFallbackSecondary, secondary),
		attribute.Bool(AttrFallbackUsed, used),
	)
}

// SetErrorAttributes sets error-related attributes on a span.
// This also records the error using span.RecordError() and sets the span status.
//
// Example:
//
//	SetErrorAttributes(span, err, "parse")
func SetErrorAttributes(span trace.Span, err error, errorType string) {
	if err == nil {
		return
	}

	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String(AttrErrorType, errorType),
		attribute.String(AttrErrorMessage, err.Error()),
	)

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetOK marks a span as successful.
func SetOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}
