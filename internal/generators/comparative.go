package generators

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/scribe/internal/models"
	"github.com/ternarybob/scribe/internal/services/transform"
)

const comparativeSystem = `You are an editor writing balanced comparison articles for expatriates and travellers.
The content field holds HTML (no <html> or <body>) with exactly one comparison <table> using <thead> and <tbody>.`

// ComparativeGenerator writes comparison articles as HTML built around a summary table
type ComparativeGenerator struct {
	base
}

// NewComparativeGenerator creates a new comparative generator
func NewComparativeGenerator(deps Dependencies) *ComparativeGenerator {
	return &ComparativeGenerator{base: newBase(models.GeneratorComparative, deps)}
}

// Generate produces a comparative article. Markdown is derived from the sanitized HTML.
func (g *ComparativeGenerator) Generate(ctx context.Context, genCtx *models.GenerationContext) (*models.Article, error) {
	c, err := g.complete(ctx, genCtx, comparativeSystem)
	if err != nil {
		return nil, err
	}

	content := c.draft.Content
	if !looksLikeHTML(content) {
		// Some models answer in markdown despite the instruction
		if content, err = g.transform.MarkdownToHTML(content); err != nil {
			return nil, err
		}
	}

	html := g.options.Policy.Sanitize(transform.StripCodeFences(content))
	if html == "" {
		return nil, ErrEmptyContent
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse comparative html: %w", err)
	}
	tables := doc.Find("table").Length()
	options := doc.Find("table tbody tr").Length()
	minOptions := genCtx.TemplateConfig.Int("min_options", 0)
	if tables == 0 || options < minOptions {
		g.logger.Warn().
			Str("template", genCtx.TemplateCode).
			Int("tables", tables).
			Int("options", options).
			Int("min_options", minOptions).
			Msg("Comparison table incomplete")
	}

	markdown, err := g.transform.HTMLToMarkdown(html, baseURL(genCtx))
	if err != nil {
		return nil, err
	}

	return g.article(genCtx, c, html, markdown), nil
}

func looksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(content)
	return strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, "</")
}

func baseURL(genCtx *models.GenerationContext) string {
	if genCtx.Platform != nil {
		return genCtx.Platform.BaseURL
	}
	return ""
}
