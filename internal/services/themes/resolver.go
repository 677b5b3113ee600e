package themes

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
)

type lookupFunc func(ctx context.Context, id int64) (models.ThemeEntity, error)

// Resolver fetches the theme entity a (type, id) pair refers to.
// The dispatch table covers exactly models.AllThemeTypes.
type Resolver struct {
	lookups map[models.ThemeType]lookupFunc
	logger  arbor.ILogger
}

// NewResolver builds the closed dispatch table over the theme storage
func NewResolver(storage interfaces.ThemeStorage, logger arbor.ILogger) *Resolver {
	r := &Resolver{
		lookups: make(map[models.ThemeType]lookupFunc, len(models.AllThemeTypes)),
		logger:  logger,
	}

	for _, themeType := range models.AllThemeTypes {
		r.lookups[themeType] = lookupFor(storage, themeType)
	}
	return r
}

// lookupFor maps a theme type to its storage finder. Adding a ThemeType without a case here panics at construction.
func lookupFor(storage interfaces.ThemeStorage, themeType models.ThemeType) lookupFunc {
	switch themeType {
	case models.ThemeTypeTheme:
		return func(ctx context.Context, id int64) (models.ThemeEntity, error) {
			theme, err := storage.GetTheme(ctx, id)
			if err != nil || theme == nil {
				return nil, err
			}
			return theme, nil
		}
	case models.ThemeTypeProviderType:
		return func(ctx context.Context, id int64) (models.ThemeEntity, error) {
			providerType, err := storage.GetProviderType(ctx, id)
			if err != nil || providerType == nil {
				return nil, err
			}
			return providerType, nil
		}
	case models.ThemeTypeLawyerSpecialty:
		return func(ctx context.Context, id int64) (models.ThemeEntity, error) {
			specialty, err := storage.GetLawyerSpecialty(ctx, id)
			if err != nil || specialty == nil {
				return nil, err
			}
			return specialty, nil
		}
	case models.ThemeTypeExpatDomain:
		return func(ctx context.Context, id int64) (models.ThemeEntity, error) {
			domain, err := storage.GetExpatDomain(ctx, id)
			if err != nil || domain == nil {
				return nil, err
			}
			return domain, nil
		}
	case models.ThemeTypeUlixaiService:
		return func(ctx context.Context, id int64) (models.ThemeEntity, error) {
			service, err := storage.GetUlixaiService(ctx, id)
			if err != nil || service == nil {
				return nil, err
			}
			return service, nil
		}
	default:
		panic(fmt.Sprintf("themes: no lookup for theme type %q", themeType))
	}
}

// Resolve returns the entity, or nil when the id does not exist or the type is unrecognized.
// Only storage failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, themeType models.ThemeType, id int64) (models.ThemeEntity, error) {
	lookup, ok := r.lookups[themeType]
	if !ok {
		r.logger.Debug().Str("theme_type", string(themeType)).Msg("Unrecognized theme type, no theme resolved")
		return nil, nil
	}

	result, err := lookup(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			r.logger.Debug().Str("theme_type", string(themeType)).Int64("theme_id", id).Msg("Theme not found")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve %s %d: %w", themeType, id, err)
	}
	return result, nil
}

// Supports reports whether the theme type has a lookup
func (r *Resolver) Supports(themeType models.ThemeType) bool {
	_, ok := r.lookups[themeType]
	return ok
}
