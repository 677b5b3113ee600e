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

// RequestStorage implements the RequestStorage interface for Badger
type RequestStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewRequestStorage creates a new RequestStorage instance
func NewRequestStorage(db *BadgerDB, logger arbor.ILogger) interfaces.RequestStorage {
	return &RequestStorage{
		db:     db,
		logger: logger,
	}
}

func (s *RequestStorage) SaveRequest(ctx context.Context, request *models.GenerationRequest) error {
	if request.ID == "" {
		return fmt.Errorf("request ID is required")
	}

	now := time.Now()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	if request.UpdatedAt.IsZero() {
		request.UpdatedAt = now
	}

	if err := s.db.Store().Upsert(request.ID, *request); err != nil {
		return fmt.Errorf("failed to save generation request: %w", err)
	}
	return nil
}

func (s *RequestStorage) GetRequest(ctx context.Context, id string) (*models.GenerationRequest, error) {
	var request models.GenerationRequest
	if err := s.db.Store().Get(id, &request); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("generation request %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get generation request: %w", err)
	}
	return &request, nil
}

func (s *RequestStorage) ListRequestsByTitle(ctx context.Context, titleID string) ([]*models.GenerationRequest, error) {
	var records []models.GenerationRequest
	query := badgerhold.Where("ManualTitleID").Eq(titleID).SortBy("CreatedAt", "ID")
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list generation requests: %w", err)
	}

	requests := make([]*models.GenerationRequest, len(records))
	for i := range records {
		requests[i] = &records[i]
	}
	return requests, nil
}
