package generators

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/scribe/internal/models"
)

const (
	pillarMinSections = 6
	pillarSystem      = `You are a senior editor writing cornerstone articles for expatriates and travellers.
Articles are exhaustive, factual and organised so that satellite articles can link to each section.
The content field holds Markdown: H2 headings for sections, H3 for subsections, a FAQ section and a conclusion.`
)

// PillarGenerator writes long-form cornerstone articles in markdown
type PillarGenerator struct {
	base
}

// NewPillarGenerator creates a new pillar generator
func NewPillarGenerator(deps Dependencies) *PillarGenerator {
	return &PillarGenerator{base: newBase(models.GeneratorPillar, deps)}
}

// Generate produces a pillar article
func (g *PillarGenerator) Generate(ctx context.Context, genCtx *models.GenerationContext) (*models.Article, error) {
	required := genCtx.TemplateConfig.Int("sections", pillarMinSections)
	if required < pillarMinSections {
		required = pillarMinSections
	}

	system := fmt.Sprintf("%s\nWrite at least %d H2 sections.", pillarSystem, required)
	c, err := g.complete(ctx, genCtx, system)
	if err != nil {
		return nil, err
	}

	markdown := c.draft.Content
	if sections := countHeadings(markdown, 2); sections < required {
		g.logger.Warn().
			Str("template", genCtx.TemplateCode).
			Int("sections", sections).
			Int("required", required).
			Msg("Pillar article has fewer sections than requested")
	}

	html, err := g.renderMarkdown(markdown)
	if err != nil {
		return nil, err
	}

	return g.article(genCtx, c, html, markdown), nil
}

// countHeadings counts ATX headings of exactly the given level
func countHeadings(markdown string, level int) int {
	prefix := strings.Repeat("#", level) + " "
	count := 0
	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), prefix) {
			count++
		}
	}
	return count
}
