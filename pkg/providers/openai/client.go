package openai

import (
	"context"
	"log/slog"
	"strings"

	"forgefit/coach/pkg/providers"
)

const (
	// Name is the backend identifier used by the factory.
	Name = "openai"

	// DefaultBaseURL is the OpenAI API base URL.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o"

	// APIKeyEnv is the variable the credential is read from.
	APIKeyEnv = "OPENAI_API_KEY"
)

// Provider is the OpenAI provider adapter.
// It implements providers.Provider on top of the chat completions API.
type Provider struct {
	*providers.HTTPProvider
	*providers.Generator
}

// NewProvider creates a new OpenAI provider instance.
// It fails immediately when the API key is missing.
func NewProvider(config providers.ProviderConfig, logger *slog.Logger) (*Provider, error) {
	if config.Name == "" {
		config.Name = Name
	}

	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    APIKeyEnv,
			Message:  "API key is required for OpenAI",
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.Model == "" {
		config.Model = DefaultModel
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

	logger.Info("OpenAI provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	return p, nil
}

// Complete sends a chat completion request to OpenAI.
func (p *Provider) Complete(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	config := p.GetConfig()

	url := config.BaseURL + "/chat/completions"
	headers := map[string]string{
		"Authorization": "Bearer " + config.APIKey,
		"Content-Type":  "application/json",
	}

	var openaiResp OpenAIResponse
	if err := p.DoJSONRequest(ctx, "POST", url, transformRequest(req), &openaiResp, headers); err != nil {
		return nil, err
	}

	resp, err := transformResponse(&openaiResp)
	if err != nil {
		return nil, &providers.ParseError{
			Provider: p.GetName(),
			Cause:    err,
		}
	}

	return resp, nil
}
