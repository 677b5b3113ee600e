package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/models"
	"github.com/ternarybob/scribe/internal/templates"
)

func TestDetector_DetectOptimalTemplate(t *testing.T) {
	registry, err := templates.Load("")
	require.NoError(t, err)
	detector := NewDetector(registry, arbor.NewLogger())

	tests := []struct {
		name        string
		title       string
		description string
		expected    string
	}{
		{
			name:     "comparative keyword with accents in title",
			title:    "Comparatif des assurances santé en Thaïlande",
			expected: "comparative",
		},
		{
			name:     "versus shorthand",
			title:    "Avocat vs notaire : que choisir ?",
			expected: "comparative",
		},
		{
			name:     "tie resolved by priority",
			title:    "Guide complet de l'expatriation au Portugal",
			expected: "pillar",
		},
		{
			name:     "how-to guide",
			title:    "Comment obtenir un visa retraite",
			expected: "guide",
		},
		{
			name:     "diacritics folded",
			title:    "Nouvelle RÉFORME fiscale pour les expatriés",
			expected: "news",
		},
		{
			name:     "apostrophes split words",
			title:    "Qu'est-ce que le statut de résident permanent ?",
			expected: "faq",
		},
		{
			name:        "description only",
			title:       "Assurance santé internationale",
			description: "Une comparaison des offres pour les familles",
			expected:    "comparative",
		},
		{
			name:        "title outweighs description",
			title:       "Comment choisir une mutuelle",
			description: "comparatif, comparaison",
			expected:    "guide",
		},
		{
			name:     "no signal falls back to default",
			title:    "Ouvrir un compte bancaire à Lisbonne",
			expected: "guide",
		},
		{
			name:     "empty text falls back to default",
			expected: "guide",
		},
		{
			name:     "keywords need word boundaries",
			title:    "Topographie et vsop",
			expected: "guide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := detector.DetectOptimalTemplate(tt.title, tt.description)
			assert.Equal(t, tt.expected, code)
			assert.True(t, registry.Exists(code))
		})
	}
}

func TestDetector_Deterministic(t *testing.T) {
	registry, err := templates.Load("")
	require.NoError(t, err)
	detector := NewDetector(registry, arbor.NewLogger())

	first := detector.DetectOptimalTemplate("Meilleur avocat à Bangkok", "top 5")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, detector.DetectOptimalTemplate("Meilleur avocat à Bangkok", "top 5"))
	}
}

type staticSource struct {
	definitions []models.TemplateDefinition
	defaultCode string
}

func (s staticSource) Definitions() []models.TemplateDefinition { return s.definitions }
func (s staticSource) DefaultCode() string                      { return s.defaultCode }

func TestDetector_TieBrokenByCode(t *testing.T) {
	source := staticSource{
		defaultCode: "fallback",
		definitions: []models.TemplateDefinition{
			{Code: "zeta", Keywords: []string{"visa"}},
			{Code: "alpha", Keywords: []string{"visa"}},
			{Code: "fallback"},
		},
	}
	detector := NewDetector(source, nil)

	assert.Equal(t, "alpha", detector.DetectOptimalTemplate("Visa étudiant", ""))
	assert.Equal(t, "fallback", detector.DetectOptimalTemplate("Logement", ""))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "qu est ce que l ete", fold("  Qu'est-ce que L'ÉTÉ ?! "))
	assert.Equal(t, "", fold("  -- "))
}
