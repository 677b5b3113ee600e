package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ReferenceStorage implements the ReferenceStorage interface for Badger
type ReferenceStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewReferenceStorage creates a new ReferenceStorage instance
func NewReferenceStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ReferenceStorage {
	return &ReferenceStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ReferenceStorage) GetPlatform(ctx context.Context, id int64) (*models.Platform, error) {
	var platform models.Platform
	if err := getByID(s.db, "platform", id, &platform); err != nil {
		return nil, err
	}
	return &platform, nil
}

func (s *ReferenceStorage) SavePlatform(ctx context.Context, platform *models.Platform) error {
	return saveByID(s.db, "platform", platform.ID, *platform)
}

func (s *ReferenceStorage) GetCountry(ctx context.Context, id int64) (*models.Country, error) {
	var country models.Country
	if err := getByID(s.db, "country", id, &country); err != nil {
		return nil, err
	}
	return &country, nil
}

func (s *ReferenceStorage) SaveCountry(ctx context.Context, country *models.Country) error {
	return saveByID(s.db, "country", country.ID, *country)
}

// getByID loads an int64-keyed record, mapping badgerhold.ErrNotFound to interfaces.ErrNotFound
func getByID(db *BadgerDB, kind string, id int64, result interface{}) error {
	if err := db.Store().Get(id, result); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("%s %d: %w", kind, id, interfaces.ErrNotFound)
		}
		return fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return nil
}

func saveByID(db *BadgerDB, kind string, id int64, record interface{}) error {
	if id <= 0 {
		return fmt.Errorf("%s ID must be positive", kind)
	}
	if err := db.Store().Upsert(id, record); err != nil {
		return fmt.Errorf("failed to save %s: %w", kind, err)
	}
	return nil
}
