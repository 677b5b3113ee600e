package themes

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
)

// MockThemeStorage is a mock implementation of ThemeStorage
type MockThemeStorage struct {
	mock.Mock
}

func (m *MockThemeStorage) GetTheme(ctx context.Context, id int64) (*models.Theme, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*models.Theme); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockThemeStorage) GetProviderType(ctx context.Context, id int64) (*models.ProviderType, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*models.ProviderType); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockThemeStorage) GetLawyerSpecialty(ctx context.Context, id int64) (*models.LawyerSpecialty, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*models.LawyerSpecialty); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockThemeStorage) GetExpatDomain(ctx context.Context, id int64) (*models.ExpatDomain, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*models.ExpatDomain); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockThemeStorage) GetUlixaiService(ctx context.Context, id int64) (*models.UlixaiService, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*models.UlixaiService); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockThemeStorage) SaveTheme(ctx context.Context, theme *models.Theme) error {
	return m.Called(ctx, theme).Error(0)
}

func (m *MockThemeStorage) SaveProviderType(ctx context.Context, providerType *models.ProviderType) error {
	return m.Called(ctx, providerType).Error(0)
}

func (m *MockThemeStorage) SaveLawyerSpecialty(ctx context.Context, specialty *models.LawyerSpecialty) error {
	return m.Called(ctx, specialty).Error(0)
}

func (m *MockThemeStorage) SaveExpatDomain(ctx context.Context, domain *models.ExpatDomain) error {
	return m.Called(ctx, domain).Error(0)
}

func (m *MockThemeStorage) SaveUlixaiService(ctx context.Context, service *models.UlixaiService) error {
	return m.Called(ctx, service).Error(0)
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, interfaces.ErrNotFound)
}

func TestResolver_DispatchesEveryThemeType(t *testing.T) {
	storage := new(MockThemeStorage)
	storage.On("GetTheme", mock.Anything, int64(1)).Return(&models.Theme{ID: 1, Name: "Fiscalité"}, nil)
	storage.On("GetProviderType", mock.Anything, int64(2)).Return(&models.ProviderType{ID: 2, Name: "Avocat"}, nil)
	storage.On("GetLawyerSpecialty", mock.Anything, int64(3)).Return(&models.LawyerSpecialty{ID: 3, Name: "Droit pénal"}, nil)
	storage.On("GetExpatDomain", mock.Anything, int64(4)).Return(&models.ExpatDomain{ID: 4, Name: "Visa"}, nil)
	storage.On("GetUlixaiService", mock.Anything, int64(5)).Return(&models.UlixaiService{ID: 5, Name: "Déménagement"}, nil)

	resolver := NewResolver(storage, arbor.NewLogger())
	ctx := context.Background()

	tests := []struct {
		themeType models.ThemeType
		id        int64
		label     string
	}{
		{models.ThemeTypeTheme, 1, "Fiscalité"},
		{models.ThemeTypeProviderType, 2, "Avocat"},
		{models.ThemeTypeLawyerSpecialty, 3, "Droit pénal"},
		{models.ThemeTypeExpatDomain, 4, "Visa"},
		{models.ThemeTypeUlixaiService, 5, "Déménagement"},
	}

	for _, tt := range tests {
		t.Run(string(tt.themeType), func(t *testing.T) {
			entity, err := resolver.Resolve(ctx, tt.themeType, tt.id)
			require.NoError(t, err)
			require.NotNil(t, entity)
			assert.Equal(t, tt.themeType, entity.ThemeKind())
			assert.Equal(t, tt.label, entity.ThemeLabel())
		})
	}

	for _, themeType := range models.AllThemeTypes {
		assert.True(t, resolver.Supports(themeType))
	}
	storage.AssertExpectations(t)
}

func TestResolver_MissingIDResolvesToNil(t *testing.T) {
	storage := new(MockThemeStorage)
	storage.On("GetTheme", mock.Anything, int64(42)).Return(nil, notFound("theme", 42))

	resolver := NewResolver(storage, arbor.NewLogger())

	entity, err := resolver.Resolve(context.Background(), models.ThemeTypeTheme, 42)
	require.NoError(t, err)
	assert.Nil(t, entity)
}

func TestResolver_UnknownTypeResolvesToNil(t *testing.T) {
	storage := new(MockThemeStorage)
	resolver := NewResolver(storage, arbor.NewLogger())

	entity, err := resolver.Resolve(context.Background(), models.ThemeType("blog_category"), 1)
	require.NoError(t, err)
	assert.Nil(t, entity)
	assert.False(t, resolver.Supports("blog_category"))

	storage.AssertNotCalled(t, "GetTheme", mock.Anything, mock.Anything)
}

func TestResolver_StorageFailurePropagates(t *testing.T) {
	storage := new(MockThemeStorage)
	backendErr := errors.New("disk failure")
	storage.On("GetExpatDomain", mock.Anything, int64(7)).Return(nil, backendErr)

	resolver := NewResolver(storage, arbor.NewLogger())

	entity, err := resolver.Resolve(context.Background(), models.ThemeTypeExpatDomain, 7)
	assert.Nil(t, entity)
	assert.ErrorIs(t, err, backendErr)
}
