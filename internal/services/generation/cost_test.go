package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/scribe/internal/models"
)

func TestCostEstimator_Estimate(t *testing.T) {
	estimator := NewCostEstimator(DefaultCost)

	tests := []struct {
		name     string
		article  *models.Article
		cfg      models.TemplateConfig
		expected float64
	}{
		{
			name:     "recorded cost wins",
			article:  &models.Article{GenerationCost: 1.23},
			cfg:      models.TemplateConfig{"estimated_cost": 0.10},
			expected: 1.23,
		},
		{
			name:     "template estimate when no recorded cost",
			article:  &models.Article{GenerationCost: 0},
			cfg:      models.TemplateConfig{"estimated_cost": 0.10},
			expected: 0.10,
		},
		{
			name:     "default when neither",
			article:  &models.Article{GenerationCost: 0},
			cfg:      models.TemplateConfig{"tone": "neutral"},
			expected: 0.05,
		},
		{
			name:     "negative recorded cost ignored",
			article:  &models.Article{GenerationCost: -2},
			cfg:      nil,
			expected: 0.05,
		},
		{
			name:     "integer estimate from toml",
			article:  &models.Article{},
			cfg:      models.TemplateConfig{"estimated_cost": int64(1)},
			expected: 1,
		},
		{
			name:     "nil article",
			cfg:      models.TemplateConfig{"estimated_cost": 0.2},
			expected: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, estimator.Estimate(tt.article, tt.cfg))
		})
	}
}

func TestNewCostEstimator_ConfiguredDefault(t *testing.T) {
	assert.Equal(t, 0.5, NewCostEstimator(0.5).Estimate(&models.Article{}, nil))
	assert.Equal(t, DefaultCost, NewCostEstimator(-1).Estimate(&models.Article{}, nil))
}
