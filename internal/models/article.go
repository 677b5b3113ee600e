package models

import "time"

// Article is the output of a generator.
// The orchestrator only reads Type and GenerationCost; everything else is carried through to storage.
type Article struct {
	ID              string      `json:"id" badgerhold:"key"`
	ManualTitleID   string      `json:"manual_title_id" badgerhold:"index"`
	RequestID       string      `json:"request_id"`
	Type            string      `json:"type"` // template code used
	Title           string      `json:"title"`
	Slug            string      `json:"slug"`
	Excerpt         string      `json:"excerpt,omitempty"`
	ContentHTML     string      `json:"content_html"`
	ContentMarkdown string      `json:"content_markdown,omitempty"`
	LanguageCode    string      `json:"language_code"`
	PlatformID      int64       `json:"platform_id"`
	CountryID       int64       `json:"country_id"`
	ThemeType       ThemeType   `json:"theme_type,omitempty"`
	ThemeID         int64       `json:"theme_id,omitempty"`
	AuthorID        interface{} `json:"author_id,omitempty"`
	GenerationCost  float64     `json:"generation_cost"`
	Provider        string      `json:"provider,omitempty"`
	Model           string      `json:"model,omitempty"`
	InputTokens     int64       `json:"input_tokens,omitempty"`
	OutputTokens    int64       `json:"output_tokens,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}
