package ollama

import (
	"context"
	"log/slog"
	"strings"

	"forgefit/coach/pkg/providers"
)

const (
	// Name is the backend identifier used by the factory.
	Name = "ollama"

	// DefaultBaseURL is the address a local Ollama daemon listens on.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultModel is used when no model is configured.
	DefaultModel = "llama3.1"

	// APIKeyEnv is the variable the credential is read from.
	APIKeyEnv = "OLLAMA_API_KEY"

	// BaseURLEnv is the variable the base URL override is read from.
	BaseURLEnv = "OLLAMA_BASE_URL"
)

// Provider is the Ollama provider adapter.
// It implements providers.Provider on top of the native /api/chat endpoint.
type Provider struct {
	*providers.HTTPProvider
	*providers.Generator
}

// NewProvider creates a new Ollama provider instance.
// It fails immediately when the API key is missing or the base URL is not
// an http:// or https:// URL. An empty base URL selects the local daemon.
func NewProvider(config providers.ProviderConfig, logger *slog.Logger) (*Provider, error) {
	if config.Name == "" {
		config.Name = Name
	}

	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    APIKeyEnv,
			Message:  "API key is required for Ollama",
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(config.BaseURL, "http://") && !strings.HasPrefix(config.BaseURL, "https://") {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    BaseURLEnv,
			Message:  "base URL must start with http:// or https://, got " + config.BaseURL,
		}
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 10
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 5
	}

	if logger == nil {
		logger = slog.Default()
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(config, logger),
	}
	p.Generator = providers.NewGenerator(p, config, logger)

	logger.Info("Ollama provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	return p, nil
}

// Complete sends a non-streaming chat request to Ollama.
func (p *Provider) Complete(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	config := p.GetConfig()

	url := config.BaseURL + "/api/chat"
	headers := map[string]string{
		"Authorization": "Bearer " + config.APIKey,
		"Content-Type":  "application/json",
	}

	var chatResp ChatResponse
	if err := p.DoJSONRequest(ctx, "POST", url, transformRequest(req), &chatResp, headers); err != nil {
		return nil, err
	}

	resp, err := transformResponse(&chatResp)
	if err != nil {
		return nil, &providers.ParseError{
			Provider: p.GetName(),
			Cause:    err,
		}
	}

	return resp, nil
}
