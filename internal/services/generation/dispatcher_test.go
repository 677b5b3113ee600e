package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/scribe/internal/models"
)

func namedGenerator(name string) generatorFunc {
	return func(ctx context.Context, genCtx *models.GenerationContext) (*models.Article, error) {
		return &models.Article{Title: name}, nil
	}
}

func TestDispatcher_Resolve(t *testing.T) {
	dispatcher := NewDispatcher(namedGenerator("pillar"), namedGenerator("comparative"), namedGenerator("standard"))

	for _, family := range models.AllGeneratorFamilies {
		t.Run(string(family), func(t *testing.T) {
			generator, err := dispatcher.Resolve(family)
			require.NoError(t, err)

			article, err := generator.Generate(context.Background(), &models.GenerationContext{})
			require.NoError(t, err)
			assert.Equal(t, string(family), article.Title)
		})
	}
}

func TestDispatcher_UnknownFamily(t *testing.T) {
	dispatcher := NewDispatcher(namedGenerator("pillar"), nil, namedGenerator("standard"))

	for _, family := range []models.GeneratorFamily{"video", "", "Pillar", models.GeneratorComparative} {
		generator, err := dispatcher.Resolve(family)
		assert.Nil(t, generator)
		require.ErrorIs(t, err, ErrUnknownGenerator)

		var unknown *UnknownGeneratorError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, family, unknown.Family)
	}
}
