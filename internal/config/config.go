// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/resume-roaster/internal/llm"
	"github.com/jonathan/resume-roaster/internal/logging"
)

// Environment variables read by FromEnv.
const (
	EnvProvider       = "LLM_PROVIDER"
	EnvModel          = "LLM_MODEL"
	EnvBaseURL        = "LLM_BASE_URL"
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvGeminiKey      = "GEMINI_API_KEY"
	EnvPort           = "PORT"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
	EnvMaxBodyBytes   = "MAX_BODY_BYTES"
	EnvMaxUploadBytes = "MAX_UPLOAD_BYTES"
)

// Config represents the application configuration. It can be loaded from a
// JSON file; environment variables and CLI flags take precedence over it.
type Config struct {
	// Model provider
	Provider string `json:"provider,omitempty"` // "openai" (default) or "gemini"
	Model    string `json:"model,omitempty"`    // overrides the provider's standard model
	BaseURL  string `json:"base_url,omitempty"` // overrides the provider endpoint
	APIKey   string `json:"api_key,omitempty"`  // secret for the selected provider

	// Server
	Port           int   `json:"port,omitempty"`
	MaxBodyBytes   int64 `json:"max_body_bytes,omitempty"`
	MaxUploadBytes int64 `json:"max_upload_bytes,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:       string(llm.ProviderOpenAI),
		Port:           8080,
		MaxBodyBytes:   1 << 20,
		MaxUploadBytes: 10 << 20,
		LogLevel:       "info",
		LogFormat:      string(logging.FormatText),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. The API key is
// resolved later by Load, once the provider is known.
func FromEnv() (Config, error) {
	cfg := Config{
		Provider:  os.Getenv(EnvProvider),
		Model:     os.Getenv(EnvModel),
		BaseURL:   os.Getenv(EnvBaseURL),
		LogLevel:  os.Getenv(EnvLogLevel),
		LogFormat: os.Getenv(EnvLogFormat),
	}

	var err error
	if cfg.Port, err = envInt(EnvPort); err != nil {
		return Config{}, err
	}
	if cfg.MaxBodyBytes, err = envInt64(EnvMaxBodyBytes); err != nil {
		return Config{}, err
	}
	if cfg.MaxUploadBytes, err = envInt64(EnvMaxUploadBytes); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load builds the effective configuration: environment over the optional
// config file over Defaults. The result is validated.
func Load(path string) (*Config, error) {
	var file Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}

	env, err := FromEnv()
	if err != nil {
		return nil, err
	}

	cfg := env.MergeWithDefaults(file)
	cfg = cfg.MergeWithDefaults(Defaults())
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(cfg.APIKeyEnv())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// The API key is checked separately by RequireAPIKey since not every
// command needs one.
func (c *Config) Validate() error {
	if _, err := llm.ParseProvider(c.Provider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("config error: 'max_body_bytes' must be non-negative")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxBodyBytes == 0 {
		result.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}

	return result
}

// ProviderName returns the parsed provider, defaulting to OpenAI.
func (c *Config) ProviderName() llm.Provider {
	p, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return llm.ProviderOpenAI
	}
	return p
}

// APIKeyEnv names the environment variable holding the selected provider's key.
func (c *Config) APIKeyEnv() string {
	if c.ProviderName() == llm.ProviderGemini {
		return EnvGeminiKey
	}
	return EnvOpenAIKey
}

// RequireAPIKey fails when no key is configured for the selected provider.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("API key is required: set %s or 'api_key' in the config file", c.APIKeyEnv())
	}
	return nil
}

// LLMConfig returns the model configuration for the selected provider, with
// the Model and BaseURL overrides applied.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigFor(c.ProviderName())
	cfg.BaseURL = c.BaseURL
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Model)
	}
	return cfg
}

func envInt(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func envInt64(key string) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be an integer: %w", key, err)
	}
	return n, nil
}
