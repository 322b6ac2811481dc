package providerfactory

import (
	"fmt"
	"log/slog"
	"strings"

	"forgefit/coach/pkg/config"
	"forgefit/coach/pkg/providers"
	"forgefit/coach/pkg/providers/anthropic"
	"forgefit/coach/pkg/providers/fallback"
	"forgefit/coach/pkg/providers/ollama"
	"forgefit/coach/pkg/providers/openai"
)

// DefaultProvider is used when neither the caller nor the configuration names a backend.
const DefaultProvider = openai.Name

// Observer receives provider call outcomes and fallback events.
// The metrics collector implements it.
type Observer interface {
	providers.CallObserver
	fallback.Observer
}

// Factory builds providers from an explicit AI configuration.
// It never reads the process environment.
type Factory struct {
	cfg      config.AIConfig
	logger   *slog.Logger
	observer Observer
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger handed to every provider the factory builds.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithObserver attaches an observer to every provider and fallback the factory builds.
func WithObserver(observer Observer) Option {
	return func(f *Factory) {
		f.observer = observer
	}
}

// New creates a Factory for cfg.
//
// Example:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	factory := providerfactory.New(cfg.AI, providerfactory.WithLogger(logger))
//	provider, err := factory.Create("anthropic")
func New(cfg config.AIConfig, opts ...Option) *Factory {
	f := &Factory{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Names returns the backend names Create accepts.
func Names() []string {
	return append([]string(nil), config.KnownProviders...)
}

// Resolve returns the backend name Create would build for name:
// the explicit name, else the configured provider, else "openai".
func (f *Factory) Resolve(name string) string {
	if name != "" {
		return name
	}
	if f.cfg.Provider != "" {
		return f.cfg.Provider
	}
	return DefaultProvider
}

// Create builds the named backend.
//
// Supported backends:
//   - "openai": OpenAI chat completions
//   - "anthropic": Anthropic Messages API
//   - "ollama": Ollama chat API
//
// An empty name resolves through Resolve. Unknown names and missing
// credentials fail with *providers.ConfigError.
func (f *Factory) Create(name string) (providers.Provider, error) {
	name = f.Resolve(name)

	backend, ok := f.cfg.Backend(name)
	if !ok {
		return nil, &providers.ConfigError{
			Provider: name,
			Field:    "provider",
			Message:  fmt.Sprintf("unsupported provider %q (supported: %s)", name, strings.Join(config.KnownProviders, ", ")),
		}
	}

	pc := f.providerConfig(name, backend)

	f.logger.Debug("creating provider",
		"name", name,
		"base_url", pc.BaseURL,
		"model", pc.Model,
	)

	var (
		provider providers.Provider
		err      error
	)
	switch name {
	case openai.Name:
		provider, err = openai.NewProvider(pc, f.logger)
	case anthropic.Name:
		provider, err = anthropic.NewProvider(pc, f.logger)
	case ollama.Name:
		provider, err = ollama.NewProvider(pc, f.logger)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create provider %q: %w", name, err)
	}

	return provider, nil
}

// CreateWithFallback builds primary and secondary through Create and wraps
// them so every operation falls through to the secondary once when the
// primary fails. An empty secondary uses the configured fallback provider.
func (f *Factory) CreateWithFallback(primary, secondary string) (*fallback.Provider, error) {
	if secondary == "" {
		secondary = f.cfg.FallbackProvider
	}
	if secondary == "" {
		return nil, &providers.ConfigError{
			Provider: f.Resolve(primary),
			Field:    "fallback_provider",
			Message:  "no fallback provider configured",
		}
	}

	p, err := f.Create(primary)
	if err != nil {
		return nil, err
	}
	s, err := f.Create(secondary)
	if err != nil {
		return nil, err
	}

	opts := []fallback.Option{fallback.WithLogger(f.logger)}
	if f.observer != nil {
		opts = append(opts, fallback.WithObserver(f.observer))
	}
	return fallback.New(p, s, opts...), nil
}

func (f *Factory) providerConfig(name string, backend config.BackendConfig) providers.ProviderConfig {
	pc := providers.ProviderConfig{
		Name:        name,
		BaseURL:     backend.BaseURL,
		APIKey:      backend.APIKey,
		Model:       backend.Model,
		Temperature: f.cfg.Temperature,
		MaxTokens:   f.cfg.MaxTokens,
		Timeout:     f.cfg.Timeout,
	}
	if f.observer != nil {
		pc.Observer = f.observer
	}
	return pc
}
