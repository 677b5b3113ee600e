package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/common"
	"github.com/ternarybob/scribe/internal/interfaces"
)

func newTestFactory(defaultProvider common.LLMProvider) *ProviderFactory {
	cfg := common.NewDefaultConfig()
	cfg.LLM.DefaultProvider = defaultProvider
	cfg.LLM.RateLimit = ""
	return NewProviderFactory(&cfg.Gemini, &cfg.Claude, &cfg.LLM, arbor.NewLogger())
}

func TestDetectProvider(t *testing.T) {
	f := newTestFactory(common.LLMProviderClaude)

	tests := []struct {
		model    string
		expected ProviderType
	}{
		{"claude-sonnet-4-20250514", ProviderClaude},
		{"anthropic/claude-haiku-3-5-20241022", ProviderClaude},
		{"gemini-2.5-flash", ProviderGemini},
		{"Google/gemini-2.5-pro", ProviderGemini},
		{"", ProviderClaude},
		{"mistral-large", ProviderClaude},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, f.DetectProvider(tt.model), tt.model)
	}

	assert.Equal(t, ProviderGemini, newTestFactory(common.LLMProviderGemini).DetectProvider(""))
}

func TestResolveModel(t *testing.T) {
	f := newTestFactory(common.LLMProviderGemini)

	provider, model := f.ResolveModel("claude/claude-sonnet-4-20250514")
	assert.Equal(t, ProviderClaude, provider)
	assert.Equal(t, "claude-sonnet-4-20250514", model)

	provider, model = f.ResolveModel("")
	assert.Equal(t, ProviderGemini, provider)
	assert.Equal(t, "gemini-2.5-flash", model)
}

func TestGenerateContent_MissingAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("SCRIBE_CLAUDE_API_KEY", "")

	f := newTestFactory(common.LLMProviderClaude)
	_, err := f.GenerateContent(context.Background(), &ContentRequest{
		Messages: []interfaces.Message{{Role: "user", Content: "hello"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Anthropic API key")
}

func TestConvertMessages(t *testing.T) {
	messages := []interfaces.Message{
		{Role: "system", Content: "You are an editor"},
		{Role: "user", Content: "Write"},
		{Role: "assistant", Content: "Draft"},
		{Role: "system", Content: "ignored"},
	}

	claude, system, err := convertMessagesToClaude(messages)
	require.NoError(t, err)
	assert.Equal(t, "You are an editor", system)
	assert.Len(t, claude, 2)

	gemini, system, err := convertMessagesToGemini(messages)
	require.NoError(t, err)
	assert.Equal(t, "You are an editor", system)
	require.Len(t, gemini, 2)
	assert.Equal(t, "model", gemini[1].Role)

	_, _, err = convertMessagesToGemini([]interfaces.Message{{Role: "assistant", Content: "x"}})
	assert.Error(t, err)
	_, _, err = convertMessagesToClaude(nil)
	assert.Error(t, err)
}

func TestConvertToGenaiSchema(t *testing.T) {
	schema, err := convertToGenaiSchema(ArticleSchema())
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.Equal(t, "OBJECT", string(schema.Type))
	assert.ElementsMatch(t, []string{"title", "content"}, schema.Required)
	require.Contains(t, schema.Properties, "content")
	assert.Equal(t, "STRING", string(schema.Properties["content"].Type))

	empty, err := convertToGenaiSchema(nil)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestPricingCost(t *testing.T) {
	pricing := Pricing{
		"claude-sonnet-4":  {Input: 3, Output: 15},
		"gemini-2.5-flash": {Input: 0.3, Output: 2.5},
	}

	cost, ok := pricing.Cost("claude-sonnet-4-20250514", Usage{InputTokens: 1_000_000, OutputTokens: 100_000})
	require.True(t, ok)
	assert.InDelta(t, 4.5, cost, 1e-9)

	cost, ok = pricing.Cost("gemini-2.5-flash", Usage{InputTokens: 2000, OutputTokens: 4000})
	require.True(t, ok)
	assert.InDelta(t, 0.0106, cost, 1e-9)

	_, ok = pricing.Cost("mistral-large", Usage{InputTokens: 10})
	assert.False(t, ok)
}
