package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ArticleStorage implements the ArticleStorage interface for Badger
type ArticleStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewArticleStorage creates a new ArticleStorage instance
func NewArticleStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ArticleStorage {
	return &ArticleStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ArticleStorage) SaveArticle(ctx context.Context, article *models.Article) error {
	if article.ID == "" {
		return fmt.Errorf("article ID is required")
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(article.ID, *article); err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}

	s.logger.Debug().
		Str("article_id", article.ID).
		Str("title_id", article.ManualTitleID).
		Int("content_length", len(article.ContentHTML)).
		Msg("Article saved")
	return nil
}

func (s *ArticleStorage) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	if err := s.db.Store().Get(id, &article); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("article %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

func (s *ArticleStorage) ListArticlesByTitle(ctx context.Context, titleID string) ([]*models.Article, error) {
	var records []models.Article
	query := badgerhold.Where("ManualTitleID").Eq(titleID).SortBy("CreatedAt", "ID")
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	articles := make([]*models.Article, len(records))
	for i := range records {
		articles[i] = &records[i]
	}
	return articles, nil
}

func (s *ArticleStorage) DeleteArticle(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.Article{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete article: %w", err)
	}
	s.logger.Debug().Str("article_id", id).Msg("Article deleted")
	return nil
}
