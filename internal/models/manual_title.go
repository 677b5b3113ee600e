package models

import (
	"encoding/gob"
	"time"
)

func init() {
	// CustomContext is a loose map; nested values need registering for badgerhold's gob encoder.
	gob.Register(map[string]interface{}{})
	gob.Register([]interface{}{})
}

// TitleStatus is the lifecycle status of a ManualTitle
type TitleStatus string

const (
	TitleStatusPending    TitleStatus = "pending"
	TitleStatusQueued     TitleStatus = "queued"
	TitleStatusProcessing TitleStatus = "processing"
	TitleStatusCompleted  TitleStatus = "completed"
	TitleStatusFailed     TitleStatus = "failed"
)

// Documented optional keys of ManualTitle.CustomContext
const (
	ContextKeyThemeType = "theme_type"
	ContextKeyThemeID   = "theme_id"
	ContextKeyAuthorID  = "author_id"
)

// IsQueued reports whether the status makes the title eligible for batch processing
func (s TitleStatus) IsQueued() bool {
	return s == TitleStatusPending || s == TitleStatusQueued
}

// IsTerminal reports whether the status ends an attempt
func (s TitleStatus) IsTerminal() bool {
	return s == TitleStatusCompleted || s == TitleStatusFailed
}

// ManualTitle is a user-submitted seed for one article generation.
// Platform and Country are populated by storage on read and are never persisted inline.
type ManualTitle struct {
	ID                string                 `json:"id" badgerhold:"key"`
	Title             string                 `json:"title" validate:"required,max=500"`
	Description       string                 `json:"description" validate:"max=5000"`
	PlatformID        int64                  `json:"platform_id" validate:"gt=0"`
	Platform          *Platform              `json:"platform,omitempty"`
	CountryID         int64                  `json:"country_id" validate:"gt=0"`
	Country           *Country               `json:"country,omitempty"`
	LanguageCode      string                 `json:"language_code" validate:"required,min=2,max=8"`
	CustomContext     map[string]interface{} `json:"custom_context,omitempty"`
	SuggestedTemplate string                 `json:"suggested_template,omitempty"`
	Status            TitleStatus            `json:"status" badgerhold:"index"`
	RequestID         string                 `json:"request_id,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// CanTransition reports whether moving from the current status to next keeps the lifecycle monotonic
func (t *ManualTitle) CanTransition(next TitleStatus) bool {
	switch t.Status {
	case TitleStatusPending, TitleStatusQueued:
		return next == TitleStatusProcessing
	case TitleStatusProcessing:
		return next == TitleStatusCompleted || next == TitleStatusFailed
	default:
		return false
	}
}

// ContextValue returns a custom context value and whether it is present and non-nil
func (t *ManualTitle) ContextValue(key string) (interface{}, bool) {
	if t.CustomContext == nil {
		return nil, false
	}
	v, ok := t.CustomContext[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && s == "" {
		return nil, false
	}
	return v, true
}

// Detached returns a shallow copy without the eagerly loaded associations, suitable for persistence
func (t *ManualTitle) Detached() ManualTitle {
	c := *t
	c.Platform = nil
	c.Country = nil
	return c
}
