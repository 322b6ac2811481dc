package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coach.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
ai:
  provider: anthropic
  fallback_provider: ollama
  timeout: 90s
  anthropic:
    api_key: file-key
  ollama:
    base_url: http://gpu-box:11434
    model: llama3.1:70b
telemetry:
  logging:
    level: debug
    format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.AI.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.AI.Provider)
	}
	if cfg.AI.FallbackProvider != "ollama" {
		t.Errorf("FallbackProvider = %q, want ollama", cfg.AI.FallbackProvider)
	}
	if cfg.AI.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.AI.Timeout)
	}
	if cfg.AI.Anthropic.APIKey != "file-key" {
		t.Errorf("Anthropic.APIKey = %q, want file-key", cfg.AI.Anthropic.APIKey)
	}
	if cfg.AI.Ollama.Model != "llama3.1:70b" {
		t.Errorf("Ollama.Model = %q", cfg.AI.Ollama.Model)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Telemetry.Logging)
	}
	// Defaults still fill the rest.
	if cfg.AI.MaxTokens != DefaultAIMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", cfg.AI.MaxTokens, DefaultAIMaxTokens)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "ai: [unterminated")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfigFile(t, "ai:\n  provider: gemini\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Errors[0].Field != "ai.provider" {
		t.Errorf("Field = %q, want ai.provider", verr.Errors[0].Field)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
ai:
  provider: openai
  openai:
    api_key: from-file
`)

	t.Setenv("AI_PROVIDER", "ollama")
	t.Setenv("AI_FALLBACK_PROVIDER", "anthropic")
	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("OLLAMA_API_KEY", "ollama-key")
	t.Setenv("OLLAMA_BASE_URL", "https://ollama.internal")
	t.Setenv("ANTHROPIC_MODEL", "claude-3-haiku")
	t.Setenv("COACH_AI_TIMEOUT", "15s")
	t.Setenv("COACH_AI_MAX_TOKENS", "2048")
	t.Setenv("COACH_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("COACH_TELEMETRY_METRICS_ENABLED", "false")
	t.Setenv("COACH_TELEMETRY_TRACING_ENABLED", "true")
	t.Setenv("COACH_TELEMETRY_TRACING_ENDPOINT", "localhost:4317")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AI.Provider != "ollama" {
		t.Errorf("Provider = %q, want ollama", cfg.AI.Provider)
	}
	if cfg.AI.FallbackProvider != "anthropic" {
		t.Errorf("FallbackProvider = %q, want anthropic", cfg.AI.FallbackProvider)
	}
	if cfg.AI.OpenAI.APIKey != "from-env" {
		t.Errorf("OpenAI.APIKey = %q, want from-env", cfg.AI.OpenAI.APIKey)
	}
	if cfg.AI.Ollama.APIKey != "ollama-key" || cfg.AI.Ollama.BaseURL != "https://ollama.internal" {
		t.Errorf("Ollama = %+v", cfg.AI.Ollama)
	}
	if cfg.AI.Anthropic.Model != "claude-3-haiku" {
		t.Errorf("Anthropic.Model = %q", cfg.AI.Anthropic.Model)
	}
	if cfg.AI.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.AI.Timeout)
	}
	if cfg.AI.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d, want 2048", cfg.AI.MaxTokens)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.IsEnabled() {
		t.Error("metrics should be disabled by env")
	}
	if !cfg.Telemetry.Tracing.Enabled || cfg.Telemetry.Tracing.Endpoint != "localhost:4317" {
		t.Errorf("Tracing = %+v", cfg.Telemetry.Tracing)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.AI.Anthropic.APIKey != "sk-ant" {
		t.Errorf("Anthropic.APIKey = %q, want sk-ant", cfg.AI.Anthropic.APIKey)
	}
	if cfg.AI.Provider != "" {
		t.Errorf("Provider = %q, want empty so the factory default applies", cfg.AI.Provider)
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "ftp://ollama")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected validation error for ftp base URL")
	}
	if !strings.Contains(err.Error(), "ai.ollama.base_url") {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestLoad_UnparseableEnvIgnored(t *testing.T) {
	t.Setenv("COACH_AI_TIMEOUT", "soon")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.Timeout != DefaultAITimeout {
		t.Errorf("Timeout = %v, want default %v", cfg.AI.Timeout, DefaultAITimeout)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "OPENAI_API_KEY=dotenv-key\nOPENAI_MODEL=gpt-4o-mini\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Existing variables win over the file.
	t.Setenv("OPENAI_MODEL", "preset")
	t.Setenv("OPENAI_API_KEY", "")
	os.Unsetenv("OPENAI_API_KEY")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	if got := os.Getenv("OPENAI_API_KEY"); got != "dotenv-key" {
		t.Errorf("OPENAI_API_KEY = %q, want dotenv-key", got)
	}
	if got := os.Getenv("OPENAI_MODEL"); got != "preset" {
		t.Errorf("OPENAI_MODEL = %q, want preset", got)
	}
}

func TestLoadDotEnv_MissingExplicitFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatal("expected error for missing explicit dotenv file")
	}
}

func TestLoadDotEnv_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("missing default .env should be ignored, got %v", err)
	}
}
