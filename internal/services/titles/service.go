package titles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/common"
	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
)

// ErrInvalidTitle wraps every intake validation failure
var ErrInvalidTitle = errors.New("invalid title")

// SubmitInput is a title as submitted by an editor
type SubmitInput struct {
	Title        string                 `json:"title" yaml:"title" validate:"required,max=500"`
	Description  string                 `json:"description" yaml:"description" validate:"max=5000"`
	PlatformID   int64                  `json:"platform_id" yaml:"platform_id" validate:"gt=0"`
	CountryID    int64                  `json:"country_id" yaml:"country_id" validate:"gt=0"`
	LanguageCode string                 `json:"language_code" yaml:"language_code" validate:"required,min=2,max=8"`
	ThemeType    string                 `json:"theme_type,omitempty" yaml:"theme_type" validate:"required_with=ThemeID"`
	ThemeID      int64                  `json:"theme_id,omitempty" yaml:"theme_id" validate:"gte=0"`
	AuthorID     interface{}            `json:"author_id,omitempty" yaml:"author_id"`
	Context      map[string]interface{} `json:"custom_context,omitempty" yaml:"custom_context"`
}

// Service handles title intake outside the generation path
type Service struct {
	titles     interfaces.TitleStorage
	references interfaces.ReferenceStorage
	validate   *validator.Validate
	logger     arbor.ILogger
}

// NewService creates a new title intake service
func NewService(titles interfaces.TitleStorage, references interfaces.ReferenceStorage, logger arbor.ILogger) *Service {
	return &Service{
		titles:     titles,
		references: references,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Submit validates the input and stores it as a queued title
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*models.ManualTitle, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.LanguageCode = strings.ToLower(strings.TrimSpace(input.LanguageCode))

	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTitle, err)
	}

	if _, err := s.references.GetPlatform(ctx, input.PlatformID); err != nil {
		return nil, s.referenceError("platform", input.PlatformID, err)
	}
	if _, err := s.references.GetCountry(ctx, input.CountryID); err != nil {
		return nil, s.referenceError("country", input.CountryID, err)
	}

	custom := make(map[string]interface{}, len(input.Context)+3)
	for k, v := range input.Context {
		custom[k] = v
	}
	if input.ThemeType != "" {
		themeType, ok := models.ParseThemeType(input.ThemeType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown theme type '%s'", ErrInvalidTitle, input.ThemeType)
		}
		custom[models.ContextKeyThemeType] = string(themeType)
		if input.ThemeID > 0 {
			custom[models.ContextKeyThemeID] = input.ThemeID
		}
	}
	if input.AuthorID != nil {
		custom[models.ContextKeyAuthorID] = input.AuthorID
	}
	if len(custom) == 0 {
		custom = nil
	}

	title := &models.ManualTitle{
		ID:            common.NewTitleID(),
		Title:         input.Title,
		Description:   strings.TrimSpace(input.Description),
		PlatformID:    input.PlatformID,
		CountryID:     input.CountryID,
		LanguageCode:  input.LanguageCode,
		CustomContext: custom,
		Status:        models.TitleStatusQueued,
	}
	if err := s.titles.SaveTitle(ctx, title); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("title_id", title.ID).
		Str("title", title.Title).
		Int64("platform_id", title.PlatformID).
		Int64("country_id", title.CountryID).
		Msg("Title queued")

	return s.titles.GetTitle(ctx, title.ID)
}

func (s *Service) referenceError(kind string, id int64, err error) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return fmt.Errorf("%w: %s %d does not exist", ErrInvalidTitle, kind, id)
	}
	return fmt.Errorf("failed to check %s %d: %w", kind, id, err)
}

// Requeue moves a failed title back to queued
func (s *Service) Requeue(ctx context.Context, id string) error {
	if err := s.titles.RequeueTitle(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("title_id", id).Msg("Title requeued")
	return nil
}

// Get returns a title with its platform and country
func (s *Service) Get(ctx context.Context, id string) (*models.ManualTitle, error) {
	return s.titles.GetTitle(ctx, id)
}

// List returns titles in the given status, oldest first
func (s *Service) List(ctx context.Context, status models.TitleStatus, limit int) ([]*models.ManualTitle, error) {
	return s.titles.ListTitlesByStatus(ctx, status, limit)
}
