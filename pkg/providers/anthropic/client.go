package anthropic

import (
	"context"
	"log/slog"
	"strings"

	"forgefit/coach/pkg/providers"
)

const (
	// Name is the backend identifier used by the factory.
	Name = "anthropic"

	// DefaultBaseURL is the Anthropic API base URL.
	DefaultBaseURL = "https://api.anthropic.com"

	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-3-5-sonnet-20241022"

	// DefaultAnthropicVersion is the API version to use
	DefaultAnthropicVersion = "2023-06-01"

	// APIKeyEnv is the variable the credential is read from.
	APIKeyEnv = "ANTHROPIC_API_KEY"
)

// Provider is the Anthropic provider adapter.
// It implements providers.Provider on top of the Messages API.
type Provider struct {
	*providers.HTTPProvider
	*providers.Generator
}

// NewProvider creates a new Anthropic provider instance.
// It fails immediately when the API key is missing.
func NewProvider(config providers.ProviderConfig, logger *slog.Logger) (*Provider, error) {
	if config.Name == "" {
		config.Name = Name
	}

	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    APIKeyEnv,
			Message:  "API key is required for Anthropic",
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}

	if logger == nil {
		logger = slog.Default()
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(config, logger),
	}
	p.Generator = providers.NewGenerator(p, config, logger)

	logger.Info("Anthropic provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	return p, nil
}

// Complete sends a messages request to Anthropic.
func (p *Provider) Complete(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	anthropicReq, err := transformRequest(req)
	if err != nil {
		return nil, err
	}

	config := p.GetConfig()
	url := config.BaseURL + "/v1/messages"
	headers := map[string]string{
		"x-api-key":         config.APIKey,
		"anthropic-version": DefaultAnthropicVersion,
		"Content-Type":      "application/json",
	}

	var anthropicResp AnthropicResponse
	if err := p.DoJSONRequest(ctx, "POST", url, anthropicReq, &anthropicResp, headers); err != nil {
		return nil, err
	}

	resp, err := transformResponse(&anthropicResp, req.JSONMode)
	if err != nil {
		return nil, &providers.ParseError{
			Provider: p.GetName(),
			Cause:    err,
		}
	}

	return resp, nil
}
