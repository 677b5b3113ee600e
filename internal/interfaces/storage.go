package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/scribe/internal/models"
)

// ErrNotFound is returned by storage lookups when the record does not exist
var ErrNotFound = errors.New("record not found")

// ErrInvalidTransition is returned when a status write would break the title lifecycle
var ErrInvalidTransition = errors.New("invalid status transition")

// TitleStorage - persistence of manual titles and their lifecycle status
type TitleStorage interface {
	SaveTitle(ctx context.Context, title *models.ManualTitle) error
	// GetTitle returns the title with Platform and Country loaded
	GetTitle(ctx context.Context, id string) (*models.ManualTitle, error)
	// ListQueuedTitles returns up to limit titles whose status is pending or queued, oldest first
	ListQueuedTitles(ctx context.Context, limit int) ([]*models.ManualTitle, error)
	ListTitlesByStatus(ctx context.Context, status models.TitleStatus, limit int) ([]*models.ManualTitle, error)
	// ClaimTitle atomically moves a pending/queued title to processing and records the request id.
	// Returns ErrInvalidTransition when the title is in any other status.
	ClaimTitle(ctx context.Context, id string, requestID string) (*models.ManualTitle, error)
	// UpdateTitleStatus writes a terminal status, enforcing monotonic transitions
	UpdateTitleStatus(ctx context.Context, id string, status models.TitleStatus) error
	SetSuggestedTemplate(ctx context.Context, id string, code string) error
	// RequeueTitle moves a failed title back to queued for a fresh attempt
	RequeueTitle(ctx context.Context, id string) error
}

// RequestStorage - persistence of generation requests
type RequestStorage interface {
	SaveRequest(ctx context.Context, request *models.GenerationRequest) error
	GetRequest(ctx context.Context, id string) (*models.GenerationRequest, error)
	ListRequestsByTitle(ctx context.Context, titleID string) ([]*models.GenerationRequest, error)
}

// ArticleStorage - persistence of generated articles
type ArticleStorage interface {
	SaveArticle(ctx context.Context, article *models.Article) error
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	ListArticlesByTitle(ctx context.Context, titleID string) ([]*models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
}

// ThemeStorage - one find-by-id lookup per theme kind
type ThemeStorage interface {
	GetTheme(ctx context.Context, id int64) (*models.Theme, error)
	GetProviderType(ctx context.Context, id int64) (*models.ProviderType, error)
	GetLawyerSpecialty(ctx context.Context, id int64) (*models.LawyerSpecialty, error)
	GetExpatDomain(ctx context.Context, id int64) (*models.ExpatDomain, error)
	GetUlixaiService(ctx context.Context, id int64) (*models.UlixaiService, error)

	SaveTheme(ctx context.Context, theme *models.Theme) error
	SaveProviderType(ctx context.Context, providerType *models.ProviderType) error
	SaveLawyerSpecialty(ctx context.Context, specialty *models.LawyerSpecialty) error
	SaveExpatDomain(ctx context.Context, domain *models.ExpatDomain) error
	SaveUlixaiService(ctx context.Context, service *models.UlixaiService) error
}

// ReferenceStorage - platforms and countries
type ReferenceStorage interface {
	GetPlatform(ctx context.Context, id int64) (*models.Platform, error)
	SavePlatform(ctx context.Context, platform *models.Platform) error
	GetCountry(ctx context.Context, id int64) (*models.Country, error)
	SaveCountry(ctx context.Context, country *models.Country) error
}

// StorageManager - composite interface for all storage operations
type StorageManager interface {
	TitleStorage() TitleStorage
	RequestStorage() RequestStorage
	ArticleStorage() ArticleStorage
	ThemeStorage() ThemeStorage
	ReferenceStorage() ReferenceStorage
	Close() error
}
