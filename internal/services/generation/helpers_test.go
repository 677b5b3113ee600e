package generation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
)

// memoryTitleStorage mirrors the Badger title store's transition rules in memory
type memoryTitleStorage struct {
	mu     sync.Mutex
	titles map[string]models.ManualTitle
	// listErr makes ListQueuedTitles fail
	listErr error
	// setSuggestedCalls counts SetSuggestedTemplate invocations
	setSuggestedCalls int
}

func newMemoryTitleStorage(titles ...*models.ManualTitle) *memoryTitleStorage {
	s := &memoryTitleStorage{titles: map[string]models.ManualTitle{}}
	for _, t := range titles {
		s.titles[t.ID] = *t
	}
	return s
}

func (s *memoryTitleStorage) SaveTitle(ctx context.Context, title *models.ManualTitle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles[title.ID] = *title
	return nil
}

func (s *memoryTitleStorage) GetTitle(ctx context.Context, id string) (*models.ManualTitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.titles[id]
	if !ok {
		return nil, fmt.Errorf("title %s: %w", id, interfaces.ErrNotFound)
	}
	return &t, nil
}

func (s *memoryTitleStorage) status(id string) models.TitleStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.titles[id].Status
}

func (s *memoryTitleStorage) ListQueuedTitles(ctx context.Context, limit int) ([]*models.ManualTitle, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var queued []*models.ManualTitle
	for _, t := range s.titles {
		if t.Status.IsQueued() {
			t := t
			queued = append(queued, &t)
		}
	}
	sort.Slice(queued, func(i, j int) bool {
		if !queued[i].CreatedAt.Equal(queued[j].CreatedAt) {
			return queued[i].CreatedAt.Before(queued[j].CreatedAt)
		}
		return queued[i].ID < queued[j].ID
	})
	if len(queued) > limit {
		queued = queued[:limit]
	}
	return queued, nil
}

func (s *memoryTitleStorage) ListTitlesByStatus(ctx context.Context, status models.TitleStatus, limit int) ([]*models.ManualTitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.ManualTitle
	for _, t := range s.titles {
		if t.Status == status {
			t := t
			out = append(out, &t)
		}
	}
	return out, nil
}

func (s *memoryTitleStorage) ClaimTitle(ctx context.Context, id string, requestID string) (*models.ManualTitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.titles[id]
	if !ok {
		return nil, fmt.Errorf("title %s: %w", id, interfaces.ErrNotFound)
	}
	if !t.CanTransition(models.TitleStatusProcessing) {
		return nil, fmt.Errorf("%w: title %s is %s", interfaces.ErrInvalidTransition, id, t.Status)
	}
	t.Status = models.TitleStatusProcessing
	t.RequestID = requestID
	s.titles[id] = t
	return &t, nil
}

func (s *memoryTitleStorage) UpdateTitleStatus(ctx context.Context, id string, status models.TitleStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.titles[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if !t.CanTransition(status) {
		return fmt.Errorf("%w: %s -> %s", interfaces.ErrInvalidTransition, t.Status, status)
	}
	t.Status = status
	s.titles[id] = t
	return nil
}

func (s *memoryTitleStorage) SetSuggestedTemplate(ctx context.Context, id string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSuggestedCalls++
	t, ok := s.titles[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	t.SuggestedTemplate = code
	s.titles[id] = t
	return nil
}

func (s *memoryTitleStorage) RequeueTitle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.titles[id]
	if !ok || t.Status != models.TitleStatusFailed {
		return interfaces.ErrInvalidTransition
	}
	t.Status = models.TitleStatusQueued
	s.titles[id] = t
	return nil
}

type memoryRequestStorage struct {
	mu       sync.Mutex
	requests map[string]models.GenerationRequest
	// completeErr makes saving a completed request fail
	completeErr error
}

func newMemoryRequestStorage() *memoryRequestStorage {
	return &memoryRequestStorage{requests: map[string]models.GenerationRequest{}}
}

func (s *memoryRequestStorage) SaveRequest(ctx context.Context, request *models.GenerationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completeErr != nil && request.Status == models.RequestStatusCompleted {
		return s.completeErr
	}
	s.requests[request.ID] = *request
	return nil
}

func (s *memoryRequestStorage) GetRequest(ctx context.Context, id string) (*models.GenerationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &r, nil
}

func (s *memoryRequestStorage) ListRequestsByTitle(ctx context.Context, titleID string) ([]*models.GenerationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.GenerationRequest
	for _, r := range s.requests {
		if r.ManualTitleID == titleID {
			r := r
			out = append(out, &r)
		}
	}
	return out, nil
}

type memoryArticleStorage struct {
	mu       sync.Mutex
	articles map[string]models.Article
}

func newMemoryArticleStorage() *memoryArticleStorage {
	return &memoryArticleStorage{articles: map[string]models.Article{}}
}

func (s *memoryArticleStorage) SaveArticle(ctx context.Context, article *models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[article.ID] = *article
	return nil
}

func (s *memoryArticleStorage) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &a, nil
}

func (s *memoryArticleStorage) ListArticlesByTitle(ctx context.Context, titleID string) ([]*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Article
	for _, a := range s.articles {
		if a.ManualTitleID == titleID {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (s *memoryArticleStorage) DeleteArticle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.articles, id)
	return nil
}

// generatorFunc adapts a function to interfaces.Generator
type generatorFunc func(ctx context.Context, genCtx *models.GenerationContext) (*models.Article, error)

func (f generatorFunc) Generate(ctx context.Context, genCtx *models.GenerationContext) (*models.Article, error) {
	return f(ctx, genCtx)
}

// countingDetector returns a fixed code and records calls
type countingDetector struct {
	mu    sync.Mutex
	code  string
	calls int
	// panicWith makes detection panic with this value
	panicWith interface{}
}

func (d *countingDetector) DetectOptimalTemplate(title, description string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.panicWith != nil {
		panic(d.panicWith)
	}
	return d.code
}

// mapResolver resolves themes from a fixed table
type mapResolver struct {
	entities map[models.ThemeType]map[int64]models.ThemeEntity
	err      error
}

func (r *mapResolver) Resolve(ctx context.Context, themeType models.ThemeType, id int64) (models.ThemeEntity, error) {
	if r.err != nil {
		return nil, r.err
	}
	byID, ok := r.entities[themeType]
	if !ok {
		return nil, nil
	}
	entity, ok := byID[id]
	if !ok {
		return nil, nil
	}
	return entity, nil
}
