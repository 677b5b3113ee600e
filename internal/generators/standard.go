package generators

import (
	"context"

	"github.com/ternarybob/scribe/internal/models"
)

const standardSystem = `You are an editor writing clear, practical articles for expatriates and travellers.
The content field holds Markdown with H2 headings. Do not include the title as a heading.`

// StandardGenerator writes guide, FAQ and news articles in markdown
type StandardGenerator struct {
	base
}

// NewStandardGenerator creates a new standard generator
func NewStandardGenerator(deps Dependencies) *StandardGenerator {
	return &StandardGenerator{base: newBase(models.GeneratorStandard, deps)}
}

// Generate produces a standard article
func (g *StandardGenerator) Generate(ctx context.Context, genCtx *models.GenerationContext) (*models.Article, error) {
	c, err := g.complete(ctx, genCtx, standardSystem)
	if err != nil {
		return nil, err
	}

	html, err := g.renderMarkdown(c.draft.Content)
	if err != nil {
		return nil, err
	}

	return g.article(genCtx, c, html, c.draft.Content), nil
}
