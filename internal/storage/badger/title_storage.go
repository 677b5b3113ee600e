package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// TitleStorage implements the TitleStorage interface for Badger.
// Titles are stored without their Platform/Country; GetTitle loads them from ReferenceStorage.
type TitleStorage struct {
	db         *BadgerDB
	references interfaces.ReferenceStorage
	logger     arbor.ILogger
}

// NewTitleStorage creates a new TitleStorage instance
func NewTitleStorage(db *BadgerDB, references interfaces.ReferenceStorage, logger arbor.ILogger) interfaces.TitleStorage {
	return &TitleStorage{
		db:         db,
		references: references,
		logger:     logger,
	}
}

func (s *TitleStorage) SaveTitle(ctx context.Context, title *models.ManualTitle) error {
	if title.ID == "" {
		return fmt.Errorf("title ID is required")
	}

	now := time.Now()
	if title.CreatedAt.IsZero() {
		title.CreatedAt = now
	}
	title.UpdatedAt = now
	if title.Status == "" {
		title.Status = models.TitleStatusPending
	}

	// Store the value type: badgerhold prefixes keys with the type name
	record := title.Detached()
	if err := s.db.Store().Upsert(title.ID, record); err != nil {
		return fmt.Errorf("failed to save title: %w", err)
	}
	return nil
}

func (s *TitleStorage) GetTitle(ctx context.Context, id string) (*models.ManualTitle, error) {
	title, err := s.get(id)
	if err != nil {
		return nil, err
	}
	s.loadAssociations(ctx, title)
	return title, nil
}

func (s *TitleStorage) get(id string) (*models.ManualTitle, error) {
	var title models.ManualTitle
	if err := s.db.Store().Get(id, &title); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("title %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get title: %w", err)
	}
	return &title, nil
}

// loadAssociations eagerly attaches platform and country. Missing references are left nil.
func (s *TitleStorage) loadAssociations(ctx context.Context, title *models.ManualTitle) {
	if s.references == nil {
		return
	}
	if title.PlatformID != 0 {
		platform, err := s.references.GetPlatform(ctx, title.PlatformID)
		if err != nil {
			s.logger.Debug().Err(err).Str("title_id", title.ID).Int64("platform_id", title.PlatformID).Msg("Platform not loaded")
		} else {
			title.Platform = platform
		}
	}
	if title.CountryID != 0 {
		country, err := s.references.GetCountry(ctx, title.CountryID)
		if err != nil {
			s.logger.Debug().Err(err).Str("title_id", title.ID).Int64("country_id", title.CountryID).Msg("Country not loaded")
		} else {
			title.Country = country
		}
	}
}

func (s *TitleStorage) ListQueuedTitles(ctx context.Context, limit int) ([]*models.ManualTitle, error) {
	if limit <= 0 {
		return []*models.ManualTitle{}, nil
	}

	query := badgerhold.Where("Status").In(models.TitleStatusPending, models.TitleStatusQueued).
		SortBy("CreatedAt", "ID").
		Limit(limit)

	return s.find(ctx, query)
}

func (s *TitleStorage) ListTitlesByStatus(ctx context.Context, status models.TitleStatus, limit int) ([]*models.ManualTitle, error) {
	query := badgerhold.Where("Status").Eq(status).SortBy("CreatedAt", "ID")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return s.find(ctx, query)
}

func (s *TitleStorage) find(ctx context.Context, query *badgerhold.Query) ([]*models.ManualTitle, error) {
	var records []models.ManualTitle
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}

	titles := make([]*models.ManualTitle, 0, len(records))
	for i := range records {
		title := &records[i]
		s.loadAssociations(ctx, title)
		titles = append(titles, title)
	}
	return titles, nil
}

// ClaimTitle performs the pending/queued -> processing check-and-set inside one Badger transaction
func (s *TitleStorage) ClaimTitle(ctx context.Context, id string, requestID string) (*models.ManualTitle, error) {
	var claimed models.ManualTitle

	err := s.db.Update(func(tx *badger.Txn) error {
		if err := s.db.Store().TxGet(tx, id, &claimed); err != nil {
			if err == badgerhold.ErrNotFound {
				return fmt.Errorf("title %s: %w", id, interfaces.ErrNotFound)
			}
			return err
		}
		if !claimed.CanTransition(models.TitleStatusProcessing) {
			return fmt.Errorf("%w: title %s is %s", interfaces.ErrInvalidTransition, id, claimed.Status)
		}
		claimed.Status = models.TitleStatusProcessing
		claimed.RequestID = requestID
		claimed.UpdatedAt = time.Now()
		return s.db.Store().TxUpdate(tx, id, claimed)
	})
	if err != nil {
		if errors.Is(err, badger.ErrConflict) {
			return nil, fmt.Errorf("%w: title %s claimed concurrently", interfaces.ErrInvalidTransition, id)
		}
		return nil, err
	}

	s.logger.Debug().Str("title_id", id).Str("request_id", requestID).Msg("Title claimed for processing")

	s.loadAssociations(ctx, &claimed)
	return &claimed, nil
}

func (s *TitleStorage) UpdateTitleStatus(ctx context.Context, id string, status models.TitleStatus) error {
	return s.mutate(id, func(title *models.ManualTitle) error {
		if !title.CanTransition(status) {
			return fmt.Errorf("%w: title %s %s -> %s", interfaces.ErrInvalidTransition, id, title.Status, status)
		}
		title.Status = status
		return nil
	})
}

func (s *TitleStorage) SetSuggestedTemplate(ctx context.Context, id string, code string) error {
	return s.mutate(id, func(title *models.ManualTitle) error {
		title.SuggestedTemplate = code
		return nil
	})
}

func (s *TitleStorage) RequeueTitle(ctx context.Context, id string) error {
	return s.mutate(id, func(title *models.ManualTitle) error {
		if title.Status != models.TitleStatusFailed {
			return fmt.Errorf("%w: only failed titles can be requeued, title %s is %s", interfaces.ErrInvalidTransition, id, title.Status)
		}
		title.Status = models.TitleStatusQueued
		title.RequestID = ""
		return nil
	})
}

// mutate applies fn to the stored title inside a read-write transaction
func (s *TitleStorage) mutate(id string, fn func(title *models.ManualTitle) error) error {
	err := s.db.Update(func(tx *badger.Txn) error {
		var title models.ManualTitle
		if err := s.db.Store().TxGet(tx, id, &title); err != nil {
			if err == badgerhold.ErrNotFound {
				return fmt.Errorf("title %s: %w", id, interfaces.ErrNotFound)
			}
			return err
		}
		if err := fn(&title); err != nil {
			return err
		}
		title.UpdatedAt = time.Now()
		return s.db.Store().TxUpdate(tx, id, title)
	})
	if err != nil && errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("title %s modified concurrently: %w", id, err)
	}
	return err
}
