package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultDotEnvFile is the dotenv file LoadDotEnv reads when given no paths.
const DefaultDotEnvFile = ".env"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The environment is not consulted; use Load for that.
func LoadConfig(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load builds the configuration from an optional YAML file and the environment.
// An empty path skips the file.
//
// The loading sequence is:
// 1. Load YAML from file (if any)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		var err error
		cfg, err = readFile(path)
		if err != nil {
			return nil, err
		}
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from dotenv files into the process environment
// without overriding variables that are already set. With no paths it reads
// ./.env and ignores its absence; explicitly named files must exist.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(DefaultDotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", DefaultDotEnvFile, err)
		}
		return nil
	}

	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load dotenv files %v: %w", paths, err)
	}
	return nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Backend settings use the variable names the backends document
// (OPENAI_API_KEY, OLLAMA_BASE_URL, ...); everything else uses COACH_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// AI overrides
	if val := os.Getenv("AI_PROVIDER"); val != "" {
		cfg.AI.Provider = val
	}
	if val := os.Getenv("AI_FALLBACK_PROVIDER"); val != "" {
		cfg.AI.FallbackProvider = val
	}
	if val := os.Getenv("COACH_AI_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.AI.Timeout = d
		}
	}
	if val := os.Getenv("COACH_AI_TEMPERATURE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.AI.Temperature = f
		}
	}
	if val := os.Getenv("COACH_AI_MAX_TOKENS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.AI.MaxTokens = i
		}
	}

	applyBackendEnvOverrides(&cfg.AI.OpenAI, "OPENAI")
	applyBackendEnvOverrides(&cfg.AI.Anthropic, "ANTHROPIC")
	applyBackendEnvOverrides(&cfg.AI.Ollama, "OLLAMA")

	// Telemetry overrides
	if val := os.Getenv("COACH_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("COACH_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("COACH_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = &b
		}
	}
	if val := os.Getenv("COACH_TELEMETRY_METRICS_TEXTFILE_PATH"); val != "" {
		cfg.Telemetry.Metrics.TextfilePath = val
	}
	if val := os.Getenv("COACH_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("COACH_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("COACH_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

// applyBackendEnvOverrides reads <PREFIX>_API_KEY, <PREFIX>_BASE_URL and <PREFIX>_MODEL.
func applyBackendEnvOverrides(backend *BackendConfig, prefix string) {
	if val := os.Getenv(prefix + "_API_KEY"); val != "" {
		backend.APIKey = val
	}
	if val := os.Getenv(prefix + "_BASE_URL"); val != "" {
		backend.BaseURL = val
	}
	if val := os.Getenv(prefix + "_MODEL"); val != "" {
		backend.Model = val
	}
}
