package providers

import (
	"time"
)

// Message represents a single message in a completion exchange.
// It is provider-agnostic and is transformed to provider-specific formats.
type Message struct {
	// Role identifies the message sender (system, user, assistant)
	Role string `json:"role"`

	// Content is the message text content
	Content string `json:"content"`
}

// CompletionRequest is the provider-agnostic request every backend receives.
// Each adapter maps it onto its own request envelope.
type CompletionRequest struct {
	// Operation is the coaching operation the request belongs to.
	// It is not sent upstream; adapters use it for logging and error context.
	Operation string `json:"-"`

	// Model is the model identifier (e.g., "gpt-4o", "claude-3-5-sonnet-20241022")
	Model string `json:"model"`

	// System is the instruction that frames the model's role
	System string `json:"system,omitempty"`

	// Messages is the conversation sent after the system instruction
	Messages []Message `json:"messages"`

	// Temperature controls randomness (0.0 to 2.0)
	Temperature float64 `json:"temperature,omitempty"`

	// MaxTokens is the maximum number of tokens to generate
	MaxTokens int `json:"max_tokens,omitempty"`

	// JSONMode asks the backend to reply with a single JSON object
	JSONMode bool `json:"json_mode,omitempty"`
}

// CompletionResponse is the normalized reply of a single backend exchange.
type CompletionResponse struct {
	// ID is the upstream response identifier (may be empty for local backends)
	ID string `json:"id"`

	// Model is the model that generated the response
	Model string `json:"model"`

	// Content is the raw text the model produced
	Content string `json:"content"`

	// FinishReason indicates why generation stopped
	FinishReason string `json:"finish_reason,omitempty"`

	// Usage contains token consumption information
	Usage TokenUsage `json:"usage"`
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderConfig contains configuration for a single backend instance.
// It is bound at construction and never changes afterwards.
type ProviderConfig struct {
	// Name is the backend identifier (e.g., "openai", "anthropic", "ollama")
	Name string

	// BaseURL is the API endpoint base URL
	BaseURL string

	// APIKey is the authentication key
	APIKey string

	// Model is the model identifier sent with every request
	Model string

	// Temperature is the sampling temperature sent with every request
	Temperature float64

	// MaxTokens caps the generated output (required by some backends)
	MaxTokens int

	// Timeout bounds each outbound HTTP exchange at the transport layer.
	// Zero means no transport timeout; callers may still cancel via context.
	Timeout time.Duration

	// MaxIdleConns is the maximum number of idle connections in the pool
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool
	IdleConnTimeout time.Duration

	// Observer receives the outcome of every operation (optional)
	Observer CallObserver
}

// Message role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Operation names used in logs, metrics, spans and errors.
const (
	OpGenerateProgram       = "generate_program"
	OpGenerateChallenge     = "generate_challenge"
	OpAdaptWorkout          = "adapt_workout"
	OpGenerateDeloadOptions = "generate_deload_options"
	OpAnalyzePerformance    = "analyze_performance"
)

// Operations lists every coaching operation in contract order.
var Operations = []string{
	OpGenerateProgram,
	OpGenerateChallenge,
	OpAdaptWorkout,
	OpGenerateDeloadOptions,
	OpAnalyzePerformance,
}
