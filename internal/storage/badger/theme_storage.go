package badger

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
)

// ThemeStorage implements the ThemeStorage interface for Badger.
// Each theme kind is its own badgerhold type so ids only need to be unique per kind.
type ThemeStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewThemeStorage creates a new ThemeStorage instance
func NewThemeStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ThemeStorage {
	return &ThemeStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ThemeStorage) GetTheme(ctx context.Context, id int64) (*models.Theme, error) {
	var theme models.Theme
	if err := getByID(s.db, "theme", id, &theme); err != nil {
		return nil, err
	}
	return &theme, nil
}

func (s *ThemeStorage) GetProviderType(ctx context.Context, id int64) (*models.ProviderType, error) {
	var providerType models.ProviderType
	if err := getByID(s.db, "provider type", id, &providerType); err != nil {
		return nil, err
	}
	return &providerType, nil
}

func (s *ThemeStorage) GetLawyerSpecialty(ctx context.Context, id int64) (*models.LawyerSpecialty, error) {
	var specialty models.LawyerSpecialty
	if err := getByID(s.db, "lawyer specialty", id, &specialty); err != nil {
		return nil, err
	}
	return &specialty, nil
}

func (s *ThemeStorage) GetExpatDomain(ctx context.Context, id int64) (*models.ExpatDomain, error) {
	var domain models.ExpatDomain
	if err := getByID(s.db, "expat domain", id, &domain); err != nil {
		return nil, err
	}
	return &domain, nil
}

func (s *ThemeStorage) GetUlixaiService(ctx context.Context, id int64) (*models.UlixaiService, error) {
	var service models.UlixaiService
	if err := getByID(s.db, "ulixai service", id, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *ThemeStorage) SaveTheme(ctx context.Context, theme *models.Theme) error {
	return saveByID(s.db, "theme", theme.ID, *theme)
}

func (s *ThemeStorage) SaveProviderType(ctx context.Context, providerType *models.ProviderType) error {
	return saveByID(s.db, "provider type", providerType.ID, *providerType)
}

func (s *ThemeStorage) SaveLawyerSpecialty(ctx context.Context, specialty *models.LawyerSpecialty) error {
	return saveByID(s.db, "lawyer specialty", specialty.ID, *specialty)
}

func (s *ThemeStorage) SaveExpatDomain(ctx context.Context, domain *models.ExpatDomain) error {
	return saveByID(s.db, "expat domain", domain.ID, *domain)
}

func (s *ThemeStorage) SaveUlixaiService(ctx context.Context, service *models.UlixaiService) error {
	return saveByID(s.db, "ulixai service", service.ID, *service)
}
