package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/scribe/internal/models"
)

func TestLoad_Embedded(t *testing.T) {
	registry, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "guide", registry.DefaultCode())
	assert.ElementsMatch(t, []string{"comparative", "faq", "guide", "news", "pillar"}, registry.Codes())

	for _, code := range registry.Codes() {
		assert.True(t, registry.Exists(code), code)
		cfg, err := registry.Config(code)
		require.NoError(t, err, code)
		assert.NotNil(t, cfg, code)
	}

	family, err := registry.GeneratorFamily("comparative")
	require.NoError(t, err)
	assert.Equal(t, models.GeneratorComparative, family)
}

func TestRegistry_ConfigCarriesEstimatedCost(t *testing.T) {
	registry, err := Load("")
	require.NoError(t, err)

	cfg, err := registry.Config("pillar")
	require.NoError(t, err)
	cost, ok := cfg.EstimatedCost()
	require.True(t, ok)
	assert.Equal(t, 0.25, cost)
	assert.Equal(t, 8, cfg.Int("sections", 0))

	// news declares no estimate
	cfg, err = registry.Config("news")
	require.NoError(t, err)
	_, ok = cfg.EstimatedCost()
	assert.False(t, ok)
}

func TestRegistry_ConfigReturnsCopy(t *testing.T) {
	registry, err := Load("")
	require.NoError(t, err)

	cfg, err := registry.Config("guide")
	require.NoError(t, err)
	cfg["tone"] = "mutated"

	again, err := registry.Config("guide")
	require.NoError(t, err)
	assert.Equal(t, "helpful", again["tone"])
}

func TestRegistry_NotFound(t *testing.T) {
	registry, err := Load("")
	require.NoError(t, err)

	assert.False(t, registry.Exists("press_release"))

	_, err = registry.Config("press_release")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = registry.GeneratorFamily("press_release")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "press_release", notFound.Code)
}

func TestLoad_UserOverrideAndAddition(t *testing.T) {
	dir := t.TempDir()

	override := `
code = "news"
name = "News flash"
generator = "standard"
estimated_cost = 0.02
prompt = "Write {{.title}}"
`
	addition := `
code = "listicle"
name = "Listicle"
generator = "standard"
keywords = ["raisons", "astuces"]
prompt = "List {{.title}}"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "news.toml"), []byte(override), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "listicle.toml"), []byte(addition), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0644))

	registry, err := Load(dir)
	require.NoError(t, err)

	def, err := registry.Definition("news")
	require.NoError(t, err)
	assert.Equal(t, "News flash", def.Name)
	require.NotNil(t, def.EstimatedCost)
	assert.Equal(t, 0.02, *def.EstimatedCost)

	assert.True(t, registry.Exists("listicle"))
}

func TestNewRegistry_Validation(t *testing.T) {
	valid := func(code string, isDefault bool) models.TemplateDefinition {
		return models.TemplateDefinition{
			Code:      code,
			Name:      code,
			Generator: models.GeneratorStandard,
			Prompt:    "p",
			Default:   isDefault,
		}
	}
	negative := -1.0

	tests := []struct {
		name        string
		definitions []models.TemplateDefinition
		wantErr     string
	}{
		{
			name:        "no default",
			definitions: []models.TemplateDefinition{valid("a", false)},
			wantErr:     "no default template",
		},
		{
			name:        "two defaults",
			definitions: []models.TemplateDefinition{valid("a", true), valid("b", true)},
			wantErr:     "both marked default",
		},
		{
			name:        "duplicate code",
			definitions: []models.TemplateDefinition{valid("a", true), valid("a", false)},
			wantErr:     "duplicate template code",
		},
		{
			name: "unknown generator",
			definitions: []models.TemplateDefinition{
				{Code: "a", Name: "a", Generator: "video", Prompt: "p", Default: true},
			},
			wantErr: "unknown generator family",
		},
		{
			name: "negative estimated cost",
			definitions: []models.TemplateDefinition{
				{Code: "a", Name: "a", Generator: models.GeneratorPillar, Prompt: "p", Default: true, EstimatedCost: &negative},
			},
			wantErr: "invalid template",
		},
		{
			name: "missing prompt",
			definitions: []models.TemplateDefinition{
				{Code: "a", Name: "a", Generator: models.GeneratorPillar, Default: true},
			},
			wantErr: "invalid template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.definitions)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
