// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/types"
)

// Environment variables consulted when the file and flags leave a value empty
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvOpenAIBase   = "OPENAI_BASE_URL"
	EnvRedisURL     = "REDIS_URL"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Model provider
	Provider      string  `json:"provider,omitempty"`       // "gemini" or "openai"
	APIKey        string  `json:"api_key,omitempty"`        // Provider API key
	BaseURL       string  `json:"base_url,omitempty"`       // OpenAI-compatible endpoint override
	ModelLite     string  `json:"model_lite,omitempty"`     // Override for the lite tier
	ModelStandard string  `json:"model_standard,omitempty"` // Override for the standard tier
	ModelAdvanced string  `json:"model_advanced,omitempty"` // Override for the advanced tier
	Temperature   float64 `json:"temperature,omitempty"`    // Sampling temperature (0-2)

	// Deadlines and limits
	PrimaryTimeoutSeconds    int `json:"primary_timeout_seconds,omitempty"`
	SimplifiedTimeoutSeconds int `json:"simplified_timeout_seconds,omitempty"`
	RepairTimeoutSeconds     int `json:"repair_timeout_seconds,omitempty"`
	MaxConcurrentCalls       int `json:"max_concurrent_calls,omitempty"` // Cap on in-flight model calls

	// Scoring
	JitterSeed  uint64 `json:"jitter_seed,omitempty"`  // 0 seeds from the clock
	EnableJudge bool   `json:"enable_judge,omitempty"` // Attach model judge ratings (display only)

	// History
	RedisURL        string `json:"redis_url,omitempty"`         // Empty keeps history in memory
	HistoryTTLHours int    `json:"history_ttl_hours,omitempty"` // How long generated lines are remembered

	// Brand defaults for requests that do not carry their own
	Brand types.BrandProfile `json:"brand"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Provider:                 string(llm.ProviderGemini),
		Temperature:              0.8,
		PrimaryTimeoutSeconds:    25,
		SimplifiedTimeoutSeconds: 15,
		RepairTimeoutSeconds:     10,
		MaxConcurrentCalls:       4,
		HistoryTTLHours:          7 * 24,
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch llm.Provider(c.Provider) {
	case "", llm.ProviderGemini, llm.ProviderOpenAI:
	default:
		return fmt.Errorf("config error: unknown provider %q (expected gemini or openai)", c.Provider)
	}

	// Validate numeric ranges
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.PrimaryTimeoutSeconds < 0 || c.SimplifiedTimeoutSeconds < 0 || c.RepairTimeoutSeconds < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}
	if c.PrimaryTimeoutSeconds > 120 {
		return fmt.Errorf("config error: 'primary_timeout_seconds' must be at most 120")
	}
	if c.MaxConcurrentCalls < 0 || c.MaxConcurrentCalls > 32 {
		return fmt.Errorf("config error: 'max_concurrent_calls' must be between 0 and 32")
	}
	if c.HistoryTTLHours < 0 {
		return fmt.Errorf("config error: 'history_ttl_hours' must be non-negative")
	}

	if c.RedisURL != "" && !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
		return fmt.Errorf("config error: 'redis_url' must start with redis:// or rediss://")
	}

	for _, term := range c.Brand.BannedTerms {
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("config error: 'brand.banned_terms' contains an empty term")
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.ModelLite == "" {
		result.ModelLite = defaults.ModelLite
	}
	if result.ModelStandard == "" {
		result.ModelStandard = defaults.ModelStandard
	}
	if result.ModelAdvanced == "" {
		result.ModelAdvanced = defaults.ModelAdvanced
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}

	// Numeric fields: use default if zero
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.PrimaryTimeoutSeconds == 0 {
		result.PrimaryTimeoutSeconds = defaults.PrimaryTimeoutSeconds
	}
	if result.SimplifiedTimeoutSeconds == 0 {
		result.SimplifiedTimeoutSeconds = defaults.SimplifiedTimeoutSeconds
	}
	if result.RepairTimeoutSeconds == 0 {
		result.RepairTimeoutSeconds = defaults.RepairTimeoutSeconds
	}
	if result.MaxConcurrentCalls == 0 {
		result.MaxConcurrentCalls = defaults.MaxConcurrentCalls
	}
	if result.HistoryTTLHours == 0 {
		result.HistoryTTLHours = defaults.HistoryTTLHours
	}
	if result.JitterSeed == 0 {
		result.JitterSeed = defaults.JitterSeed
	}

	// Brand: fill each empty field
	if result.Brand.Company == "" {
		result.Brand.Company = defaults.Brand.Company
	}
	if result.Brand.Industry == "" {
		result.Brand.Industry = defaults.Brand.Industry
	}
	if result.Brand.Audience == "" {
		result.Brand.Audience = defaults.Brand.Audience
	}
	if result.Brand.Voice == "" {
		result.Brand.Voice = defaults.Brand.Voice
	}
	if len(result.Brand.BannedTerms) == 0 {
		result.Brand.BannedTerms = defaults.Brand.BannedTerms
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills the API key, base URL and Redis URL from the environment when empty.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if c.APIKey == "" {
		if llm.Provider(c.Provider) == llm.ProviderOpenAI {
			c.APIKey = getenv(EnvOpenAIAPIKey)
		} else {
			c.APIKey = getenv(EnvGeminiAPIKey)
		}
	}
	if c.BaseURL == "" && llm.Provider(c.Provider) == llm.ProviderOpenAI {
		c.BaseURL = getenv(EnvOpenAIBase)
	}
	if c.RedisURL == "" {
		c.RedisURL = getenv(EnvRedisURL)
	}
}

// LLMConfig builds the model configuration, applying per-tier overrides.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigFor(llm.Provider(c.Provider))
	cfg.BaseURL = c.BaseURL
	if c.Temperature > 0 {
		cfg.Temperature = float32(c.Temperature)
	}
	overrides := map[llm.ModelTier]string{
		llm.TierLite:     c.ModelLite,
		llm.TierStandard: c.ModelStandard,
		llm.TierAdvanced: c.ModelAdvanced,
	}
	for tier, model := range overrides {
		if model != "" {
			cfg = cfg.WithModel(tier, model)
		}
	}
	return cfg
}

// PrimaryTimeout is the deadline for each primary generation attempt.
func (c *Config) PrimaryTimeout() time.Duration {
	return seconds(c.PrimaryTimeoutSeconds)
}

// SimplifiedTimeout is the deadline for the simplified generation attempt.
func (c *Config) SimplifiedTimeout() time.Duration {
	return seconds(c.SimplifiedTimeoutSeconds)
}

// RepairTimeout is the deadline for each repair rewrite.
func (c *Config) RepairTimeout() time.Duration {
	return seconds(c.RepairTimeoutSeconds)
}

// HistoryTTL is how long generated lines are remembered.
func (c *Config) HistoryTTL() time.Duration {
	return time.Duration(c.HistoryTTLHours) * time.Hour
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
