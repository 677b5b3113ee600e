package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string                  `toml:"environment"` // "development" or "production"
	Storage     StorageConfig           `toml:"storage"`
	Logging     LoggingConfig           `toml:"logging"`
	Templates   TemplatesConfig         `toml:"templates"`
	Queue       QueueConfig             `toml:"queue"`
	Generation  GenerationConfig        `toml:"generation"`
	LLM         LLMConfig               `toml:"llm"`
	Claude      ClaudeConfig            `toml:"claude"`
	Gemini      GeminiConfig            `toml:"gemini"`
	Pricing     map[string]ModelPricing `toml:"pricing"` // keyed by model name
	Seed        SeedConfig              `toml:"seed"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	File       string   `toml:"file"`        // Log file path when "file" output is enabled
	TimeFormat string   `toml:"time_format"` // default: "15:04:05"
}

// TemplatesConfig locates user overrides for the embedded template definitions
type TemplatesConfig struct {
	Dir string `toml:"dir"` // Directory containing {code}.toml overrides (optional)
}

// QueueConfig controls batch processing of queued titles
type QueueConfig struct {
	Enabled     bool   `toml:"enabled"`     // Run the scheduler when the binary runs as a service
	Schedule    string `toml:"schedule"`    // Cron schedule (seconds field supported)
	Limit       int    `toml:"limit"`       // Max titles per batch
	Concurrency int    `toml:"concurrency"` // Titles processed in parallel within a batch
}

// GenerationConfig holds generator-wide defaults
type GenerationConfig struct {
	DefaultCost    float64 `toml:"default_cost"`    // Cost used when neither article nor template provides one
	Model          string  `toml:"model"`           // Model for generators; empty = provider default
	Temperature    float32 `toml:"temperature"`     // Completion temperature
	MaxTokens      int     `toml:"max_tokens"`      // Max output tokens per article
	SanitizePolicy string  `toml:"sanitize_policy"` // "default" or "strict"
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains unified configuration for all AI providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "claude" or "gemini"
	RateLimit       string      `toml:"rate_limit"`       // Minimum interval between provider calls, e.g. "1s"
	Timeout         string      `toml:"timeout"`          // Per-call timeout, e.g. "5m"
	MaxRetries      int         `toml:"max_retries"`      // Retries on rate-limit errors inside one call
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// ModelPricing is the price of a model in currency units per million tokens
type ModelPricing struct {
	Input  float64 `toml:"input"`
	Output float64 `toml:"output"`
}

// SeedConfig points at the YAML reference data loaded on startup
type SeedConfig struct {
	File string `toml:"file"`
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			File:       "./logs/scribe.log",
			TimeFormat: "15:04:05",
		},
		Queue: QueueConfig{
			Enabled:     true,
			Schedule:    "0 */5 * * * *", // every 5 minutes
			Limit:       10,
			Concurrency: 1,
		},
		Generation: GenerationConfig{
			DefaultCost:    0.05,
			Temperature:    0.7,
			MaxTokens:      8192,
			SanitizePolicy: "default",
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderClaude,
			RateLimit:       "1s",
			Timeout:         "5m",
			MaxRetries:      3,
		},
		Claude: ClaudeConfig{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 8192,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Pricing: map[string]ModelPricing{
			"claude-sonnet-4-20250514":  {Input: 3.0, Output: 15.0},
			"claude-haiku-3-5-20241022": {Input: 0.8, Output: 4.0},
			"gemini-2.5-flash":          {Input: 0.3, Output: 2.5},
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would otherwise fail late at runtime
func (c *Config) Validate() error {
	if c.Queue.Limit < 0 {
		return fmt.Errorf("queue.limit must be >= 0, got %d", c.Queue.Limit)
	}
	if c.Queue.Concurrency < 1 {
		return fmt.Errorf("queue.concurrency must be >= 1, got %d", c.Queue.Concurrency)
	}
	if c.Generation.DefaultCost < 0 {
		return fmt.Errorf("generation.default_cost must be >= 0, got %f", c.Generation.DefaultCost)
	}
	switch c.LLM.DefaultProvider {
	case LLMProviderClaude, LLMProviderGemini:
	default:
		return fmt.Errorf("llm.default_provider must be 'claude' or 'gemini', got '%s'", c.LLM.DefaultProvider)
	}
	for _, field := range []struct{ name, value string }{
		{"llm.rate_limit", c.LLM.RateLimit},
		{"llm.timeout", c.LLM.Timeout},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.ParseDuration(field.value); err != nil {
			return fmt.Errorf("invalid %s '%s': %w", field.name, field.value, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SCRIBE_ENV"); env != "" {
		config.Environment = env
	}

	// Storage configuration
	if badgerPath := os.Getenv("SCRIBE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("SCRIBE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("SCRIBE_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if dir := os.Getenv("SCRIBE_TEMPLATES_DIR"); dir != "" {
		config.Templates.Dir = dir
	}

	// Queue configuration
	if enabled := os.Getenv("SCRIBE_QUEUE_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Queue.Enabled = b
		}
	}
	if schedule := os.Getenv("SCRIBE_QUEUE_SCHEDULE"); schedule != "" {
		config.Queue.Schedule = schedule
	}
	if limit := os.Getenv("SCRIBE_QUEUE_LIMIT"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			config.Queue.Limit = l
		}
	}
	if concurrency := os.Getenv("SCRIBE_QUEUE_CONCURRENCY"); concurrency != "" {
		if c, err := strconv.Atoi(concurrency); err == nil {
			config.Queue.Concurrency = c
		}
	}

	// Generation configuration
	if cost := os.Getenv("SCRIBE_GENERATION_DEFAULT_COST"); cost != "" {
		if c, err := strconv.ParseFloat(cost, 64); err == nil {
			config.Generation.DefaultCost = c
		}
	}
	if model := os.Getenv("SCRIBE_GENERATION_MODEL"); model != "" {
		config.Generation.Model = model
	}
	if policy := os.Getenv("SCRIBE_GENERATION_SANITIZE_POLICY"); policy != "" {
		config.Generation.SanitizePolicy = policy
	}

	// LLM provider configuration
	if provider := os.Getenv("SCRIBE_LLM_DEFAULT_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}
	if rateLimit := os.Getenv("SCRIBE_LLM_RATE_LIMIT"); rateLimit != "" {
		config.LLM.RateLimit = rateLimit
	}
	if timeout := os.Getenv("SCRIBE_LLM_TIMEOUT"); timeout != "" {
		config.LLM.Timeout = timeout
	}

	// Claude configuration
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if apiKey := os.Getenv("SCRIBE_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey // SCRIBE_ prefix takes priority
	}
	if model := os.Getenv("SCRIBE_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}

	// Gemini configuration
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("SCRIBE_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("SCRIBE_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}

	if seed := os.Getenv("SCRIBE_SEED_FILE"); seed != "" {
		config.Seed.File = seed
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config (highest priority)
func ApplyFlagOverrides(config *Config, limit int) {
	if limit > 0 {
		config.Queue.Limit = limit
	}
}

// ResolveAPIKey resolves an API key: environment first, then the config value
func ResolveAPIKey(name string, configFallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"anthropic_api_key": {"SCRIBE_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
		"gemini_api_key":    {"SCRIBE_GEMINI_API_KEY", "GEMINI_API_KEY"},
	}

	for _, envVarName := range keyToEnvMapping[name] {
		if envValue := os.Getenv(envVarName); envValue != "" {
			return envValue, nil
		}
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}

// ParseDurationOr parses a duration string, returning fallback when empty or invalid
func ParseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
