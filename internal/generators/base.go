// Package generators turns a generation context into an article by prompting an LLM provider.
// There is one generator per template family; they share prompt rendering, response parsing,
// sanitizing and cost accounting.
package generators

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
	"github.com/ternarybob/scribe/internal/services/llm"
	"github.com/ternarybob/scribe/internal/services/sanitizer"
	"github.com/ternarybob/scribe/internal/services/transform"
)

// ErrEmptyContent is returned when the provider answers without an article body
var ErrEmptyContent = errors.New("provider returned empty content")

// DefinitionSource resolves template codes to their definitions
type DefinitionSource interface {
	Definition(code string) (models.TemplateDefinition, error)
}

// Options are the provider and output settings shared by every generator
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Pricing     llm.Pricing
	Policy      *sanitizer.Policy
}

// Dependencies groups what every generator needs
type Dependencies struct {
	Definitions DefinitionSource
	Provider    llm.ContentGenerator
	Transform   *transform.Service
	Options     Options
	Logger      arbor.ILogger
}

// base holds the generation steps common to every family
type base struct {
	family      models.GeneratorFamily
	definitions DefinitionSource
	provider    llm.ContentGenerator
	transform   *transform.Service
	options     Options
	logger      arbor.ILogger
}

func newBase(family models.GeneratorFamily, deps Dependencies) base {
	opts := deps.Options
	if opts.Policy == nil {
		opts.Policy = sanitizer.DefaultPolicy()
	}
	return base{
		family:      family,
		definitions: deps.Definitions,
		provider:    deps.Provider,
		transform:   deps.Transform,
		options:     opts,
		logger:      deps.Logger,
	}
}

// completion is one parsed provider answer
type completion struct {
	draft    *draft
	response *llm.ContentResponse
}

// complete renders the template prompt, calls the provider and parses the JSON answer
func (b *base) complete(ctx context.Context, genCtx *models.GenerationContext, system string) (*completion, error) {
	def, err := b.definitions.Definition(genCtx.TemplateCode)
	if err != nil {
		return nil, err
	}

	prompt, err := renderPrompt(def, genCtx)
	if err != nil {
		return nil, err
	}

	b.logger.Debug().
		Str("family", string(b.family)).
		Str("template", genCtx.TemplateCode).
		Int("prompt_len", len(prompt)).
		Msg("Requesting article from provider")

	response, err := b.provider.GenerateContent(ctx, &llm.ContentRequest{
		Messages:          []interfaces.Message{{Role: "user", Content: prompt}},
		Model:             b.options.Model,
		Temperature:       b.options.Temperature,
		MaxTokens:         b.options.MaxTokens,
		SystemInstruction: system + "\n\n" + responseFormatInstruction,
		OutputSchema:      llm.ArticleSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("provider call failed: %w", err)
	}

	d := parseDraft(response.Text)
	if d.Content == "" {
		return nil, ErrEmptyContent
	}
	if d.Title == "" {
		d.Title = genCtx.Title
	}

	return &completion{draft: d, response: response}, nil
}

// article assembles the generator-owned article fields
func (b *base) article(genCtx *models.GenerationContext, c *completion, contentHTML, contentMarkdown string) *models.Article {
	article := &models.Article{
		Type:            genCtx.TemplateCode,
		Title:           c.draft.Title,
		Slug:            Slugify(c.draft.Title),
		Excerpt:         c.draft.Excerpt,
		ContentHTML:     contentHTML,
		ContentMarkdown: contentMarkdown,
		LanguageCode:    genCtx.LanguageCode,
		Provider:        string(c.response.Provider),
		Model:           c.response.Model,
		InputTokens:     c.response.Usage.InputTokens,
		OutputTokens:    c.response.Usage.OutputTokens,
	}
	if article.Excerpt == "" {
		article.Excerpt = excerptFrom(contentMarkdown)
	}

	// No price means a zero cost, which leaves the estimate to the template
	if cost, ok := b.options.Pricing.Cost(c.response.Model, c.response.Usage); ok {
		article.GenerationCost = cost
	} else {
		b.logger.Debug().Str("model", c.response.Model).Msg("No pricing for model")
	}

	b.logger.Info().
		Str("family", string(b.family)).
		Str("template", genCtx.TemplateCode).
		Str("model", article.Model).
		Int64("input_tokens", article.InputTokens).
		Int64("output_tokens", article.OutputTokens).
		Int("html_len", len(article.ContentHTML)).
		Msg("Article generated")

	return article
}

// renderMarkdown converts markdown content to sanitized HTML
func (b *base) renderMarkdown(markdown string) (string, error) {
	html, err := b.transform.MarkdownToHTML(markdown)
	if err != nil {
		return "", err
	}
	html = b.options.Policy.Sanitize(html)
	if html == "" {
		return "", ErrEmptyContent
	}
	return html, nil
}
