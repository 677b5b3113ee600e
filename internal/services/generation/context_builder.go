package generation

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/models"
)

// TemplateConfigSource is the registry lookup the builder needs
type TemplateConfigSource interface {
	Config(code string) (models.TemplateConfig, error)
}

// ThemeResolver resolves a theme reference to its entity, nil when absent
type ThemeResolver interface {
	Resolve(ctx context.Context, themeType models.ThemeType, id int64) (models.ThemeEntity, error)
}

// ContextBuilder assembles the GenerationContext for one attempt
type ContextBuilder struct {
	registry TemplateConfigSource
	themes   ThemeResolver
	logger   arbor.ILogger
}

// NewContextBuilder creates a new context builder
func NewContextBuilder(registry TemplateConfigSource, themes ThemeResolver, logger arbor.ILogger) *ContextBuilder {
	return &ContextBuilder{
		registry: registry,
		themes:   themes,
		logger:   logger,
	}
}

// Build merges the title fields, its resolved theme and author, and the template config.
// An unrecognized theme type or a non-numeric theme id leaves the theme absent without error.
func (b *ContextBuilder) Build(ctx context.Context, title *models.ManualTitle, templateCode string) (*models.GenerationContext, error) {
	genCtx := &models.GenerationContext{
		Title:        title.Title,
		Description:  title.Description,
		TemplateCode: templateCode,
		PlatformID:   title.PlatformID,
		Platform:     title.Platform,
		CountryID:    title.CountryID,
		Country:      title.Country,
		LanguageCode: title.LanguageCode,
	}

	theme, err := b.resolveTheme(ctx, title)
	if err != nil {
		return nil, err
	}
	genCtx.Theme = theme

	if authorID, ok := title.ContextValue(models.ContextKeyAuthorID); ok {
		genCtx.AuthorID = authorID
	}

	cfg, err := b.registry.Config(templateCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load template config: %w", err)
	}
	genCtx.TemplateConfig = cfg

	return genCtx, nil
}

func (b *ContextBuilder) resolveTheme(ctx context.Context, title *models.ManualTitle) (*models.ThemeRef, error) {
	rawType, hasType := title.ContextValue(models.ContextKeyThemeType)
	rawID, hasID := title.ContextValue(models.ContextKeyThemeID)
	if !hasType || !hasID {
		return nil, nil
	}

	tag, _ := rawType.(string)
	themeType, known := models.ParseThemeType(tag)
	if !known {
		b.logger.Warn().
			Str("title_id", title.ID).
			Str("theme_type", fmt.Sprintf("%v", rawType)).
			Msg("Unrecognized theme type, building context without theme")
		return nil, nil
	}

	themeID, numeric := models.ToInt64(rawID)
	if !numeric {
		b.logger.Warn().
			Str("title_id", title.ID).
			Str("theme_id", fmt.Sprintf("%v", rawID)).
			Msg("Non-numeric theme id, building context without theme")
		return nil, nil
	}

	entity, err := b.themes.Resolve(ctx, themeType, themeID)
	if err != nil {
		return nil, err
	}

	return &models.ThemeRef{
		Type:   themeType,
		ID:     themeID,
		Entity: entity,
	}, nil
}
