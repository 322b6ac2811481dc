package providers

import (
	"errors"
	"fmt"
)

// OperationError is returned by every coaching operation on failure.
// It names the backend and the operation and wraps the underlying cause
// (*ProviderError, *TransportError or *ParseError).
type OperationError struct {
	// Provider is the name of the backend that failed
	Provider string

	// Operation is the coaching operation (e.g., "generate_program")
	Operation string

	// Err is the underlying cause
	Err error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Provider, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// ProviderError represents a non-2xx reply from a backend.
type ProviderError struct {
	// Provider is the name of the provider that returned the error
	Provider string

	// StatusCode is the HTTP status code
	StatusCode int

	// Status is the HTTP status text (e.g., "500 Internal Server Error")
	Status string

	// Message is the upstream error body, if any
	Message string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider %q error (status %d): %s: %s", e.Provider, e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("provider %q error (status %d): %s", e.Provider, e.StatusCode, e.Status)
}

// TransportError represents a network-level failure (DNS, connect, reset,
// timeout, cancellation) before any HTTP status was received.
type TransportError struct {
	// Provider is the name of the provider being called
	Provider string

	// Cause is the underlying network error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("provider %q request failed: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response parsing failure.
// This occurs when the backend envelope or the model's JSON payload is malformed.
type ParseError struct {
	// Provider is the name of the provider that returned the malformed response
	Provider string

	// RawResponse is the raw content that failed to parse
	RawResponse string

	// Cause is the underlying parse error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("provider %q response parse error: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ConfigError represents a provider configuration error raised at construction.
// Field names the missing or invalid setting, using the environment variable
// name when the setting has one (e.g., "OPENAI_API_KEY").
type ConfigError struct {
	// Provider is the name of the provider with invalid configuration
	Provider string

	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %q configuration error for field %q: %s",
		e.Provider, e.Field, e.Message)
}

// ErrorType classifies an error for metrics and span attributes.
func ErrorType(err error) string {
	if err == nil {
		return ""
	}

	var providerErr *ProviderError
	var transportErr *TransportError
	var parseErr *ParseError
	var configErr *ConfigError

	switch {
	case errors.As(err, &providerErr):
		switch {
		case providerErr.StatusCode == 401 || providerErr.StatusCode == 403:
			return "auth"
		case providerErr.StatusCode == 429:
			return "rate_limit"
		case providerErr.StatusCode >= 500:
			return "server_error"
		default:
			return "client_error"
		}
	case errors.As(err, &transportErr):
		return "network"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &configErr):
		return "config"
	default:
		return "unknown"
	}
}
