package models

// GenerationContext is the transient payload handed to a generator for one attempt.
// Theme is either fully populated (type, id, resolved entity or nil) or nil.
type GenerationContext struct {
	Title          string
	Description    string
	TemplateCode   string
	PlatformID     int64
	Platform       *Platform
	CountryID      int64
	Country        *Country
	LanguageCode   string
	Theme          *ThemeRef
	AuthorID       interface{}
	TemplateConfig TemplateConfig
}

// HasTheme reports whether theme fields are present
func (c *GenerationContext) HasTheme() bool {
	return c.Theme != nil
}

// ToMap renders the context in its loosely typed map form, used for prompt rendering.
// Theme and author keys are omitted entirely when absent.
func (c *GenerationContext) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"title":           c.Title,
		"description":     c.Description,
		"template_code":   c.TemplateCode,
		"platform_id":     c.PlatformID,
		"platform":        c.Platform,
		"country_id":      c.CountryID,
		"country":         c.Country,
		"language_code":   c.LanguageCode,
		"template_config": c.TemplateConfig,
	}
	if c.Theme != nil {
		m[ContextKeyThemeType] = string(c.Theme.Type)
		m[ContextKeyThemeID] = c.Theme.ID
		m["theme"] = c.Theme.Entity
	}
	if c.AuthorID != nil {
		m[ContextKeyAuthorID] = c.AuthorID
	}
	return m
}
