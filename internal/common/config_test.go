package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultConfig_IsValid(t *testing.T) {
	config := NewDefaultConfig()

	require.NoError(t, config.Validate())
	assert.Equal(t, 10, config.Queue.Limit)
	assert.Equal(t, 1, config.Queue.Concurrency)
	assert.Equal(t, 0.05, config.Generation.DefaultCost)
	assert.Equal(t, LLMProviderClaude, config.LLM.DefaultProvider)
}

func TestLoadFromFiles_LaterFilesOverride(t *testing.T) {
	base := writeConfig(t, "base.toml", `
[queue]
limit = 25
schedule = "0 0 * * * *"

[generation]
default_cost = 0.1

[pricing.custom-model]
input = 1.5
output = 6.0
`)
	override := writeConfig(t, "override.toml", `
[queue]
limit = 5
`)

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, 5, config.Queue.Limit)
	assert.Equal(t, "0 0 * * * *", config.Queue.Schedule)
	assert.Equal(t, 0.1, config.Generation.DefaultCost)
	assert.Equal(t, ModelPricing{Input: 1.5, Output: 6.0}, config.Pricing["custom-model"])
	assert.Contains(t, config.Pricing, "gemini-2.5-flash")
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadFromFiles_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative limit", "[queue]\nlimit = -1\n"},
		{"zero concurrency", "[queue]\nconcurrency = 0\n"},
		{"negative default cost", "[generation]\ndefault_cost = -0.5\n"},
		{"unknown provider", "[llm]\ndefault_provider = \"openai\"\n"},
		{"bad rate limit", "[llm]\nrate_limit = \"fast\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFiles(writeConfig(t, "config.toml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	t.Setenv("SCRIBE_QUEUE_LIMIT", "42")
	t.Setenv("SCRIBE_LOG_OUTPUT", "stdout, file")
	t.Setenv("ANTHROPIC_API_KEY", "generic-key")
	t.Setenv("SCRIBE_CLAUDE_API_KEY", "scribe-key")

	config, err := LoadFromFiles(writeConfig(t, "config.toml", "[queue]\nlimit = 3\n"))
	require.NoError(t, err)

	assert.Equal(t, 42, config.Queue.Limit)
	assert.Equal(t, []string{"stdout", "file"}, config.Logging.Output)
	assert.Equal(t, "scribe-key", config.Claude.APIKey)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 0)
	assert.Equal(t, 10, config.Queue.Limit)

	ApplyFlagOverrides(config, 3)
	assert.Equal(t, 3, config.Queue.Limit)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("SCRIBE_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := ResolveAPIKey("gemini_api_key", "")
	assert.Error(t, err)

	key, err := ResolveAPIKey("gemini_api_key", "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-config", key)

	t.Setenv("GEMINI_API_KEY", "from-env")
	key, err = ResolveAPIKey("gemini_api_key", "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestParseDurationOr(t *testing.T) {
	assert.Equal(t, 2*time.Second, ParseDurationOr("2s", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOr("", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOr("soon", time.Minute))
}

func TestGuard_RecoversPanic(t *testing.T) {
	err := Guard(GetLogger(), "test", func() error {
		panic("boom")
	})

	var panicErr *PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Contains(t, err.Error(), "boom")

	cause := errors.New("plain")
	assert.Equal(t, cause, Guard(GetLogger(), "test", func() error { return cause }))
}
