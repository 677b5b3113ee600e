package badger

import (
	"context"
	"fmt"
	"os"

	"github.com/ternarybob/scribe/internal/models"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout of reference data and optional starter titles.
//
//	platforms:
//	  - {id: 1, name: SOS Expat, slug: sos-expat}
//	themes:
//	  lawyer_specialty:
//	    - {id: 3, name: Droit de la famille}
//	titles:
//	  - {title: "...", platform_id: 1, country_id: 33, language_code: fr}
type SeedFile struct {
	Platforms []models.Platform `yaml:"platforms"`
	Countries []models.Country  `yaml:"countries"`
	Themes    SeedThemes        `yaml:"themes"`
	Titles    []SeedTitle       `yaml:"titles"`
}

// SeedThemes groups theme entities by kind, keyed by the theme type tag
type SeedThemes struct {
	Theme           []models.Theme           `yaml:"theme"`
	ProviderType    []models.ProviderType    `yaml:"provider_type"`
	LawyerSpecialty []models.LawyerSpecialty `yaml:"lawyer_specialty"`
	ExpatDomain     []models.ExpatDomain     `yaml:"expat_domain"`
	UlixaiService   []models.UlixaiService   `yaml:"ulixai_service"`
}

// SeedTitle is a starter title; titles with an id that already exists are skipped
type SeedTitle struct {
	ID            string                 `yaml:"id"`
	Title         string                 `yaml:"title"`
	Description   string                 `yaml:"description"`
	PlatformID    int64                  `yaml:"platform_id"`
	CountryID     int64                  `yaml:"country_id"`
	LanguageCode  string                 `yaml:"language_code"`
	CustomContext map[string]interface{} `yaml:"custom_context"`
}

// SeedResult counts what LoadSeedFile wrote
type SeedResult struct {
	References int
	Themes     int
	Titles     int
	Skipped    int
}

// LoadSeedFile upserts reference data and themes from a YAML file and inserts any new starter titles as queued.
// A missing path is not an error; an empty path is a no-op.
func (m *Manager) LoadSeedFile(ctx context.Context, path string, newID func() string) (*SeedResult, error) {
	result := &SeedResult{}
	if path == "" {
		return result, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug().Str("file", path).Msg("Seed file not found, skipping")
			return result, nil
		}
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(content, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	if err := m.seedReferences(ctx, &seed, result); err != nil {
		return nil, err
	}
	if err := m.seedThemes(ctx, &seed.Themes, result); err != nil {
		return nil, err
	}
	if err := m.seedTitles(ctx, seed.Titles, newID, result); err != nil {
		return nil, err
	}

	m.logger.Info().
		Str("file", path).
		Int("references", result.References).
		Int("themes", result.Themes).
		Int("titles", result.Titles).
		Int("skipped", result.Skipped).
		Msg("Seed data loaded")

	return result, nil
}

func (m *Manager) seedReferences(ctx context.Context, seed *SeedFile, result *SeedResult) error {
	for i := range seed.Platforms {
		if err := m.reference.SavePlatform(ctx, &seed.Platforms[i]); err != nil {
			return err
		}
		result.References++
	}
	for i := range seed.Countries {
		if err := m.reference.SaveCountry(ctx, &seed.Countries[i]); err != nil {
			return err
		}
		result.References++
	}
	return nil
}

func (m *Manager) seedThemes(ctx context.Context, themes *SeedThemes, result *SeedResult) error {
	for i := range themes.Theme {
		if err := m.theme.SaveTheme(ctx, &themes.Theme[i]); err != nil {
			return err
		}
		result.Themes++
	}
	for i := range themes.ProviderType {
		if err := m.theme.SaveProviderType(ctx, &themes.ProviderType[i]); err != nil {
			return err
		}
		result.Themes++
	}
	for i := range themes.LawyerSpecialty {
		if err := m.theme.SaveLawyerSpecialty(ctx, &themes.LawyerSpecialty[i]); err != nil {
			return err
		}
		result.Themes++
	}
	for i := range themes.ExpatDomain {
		if err := m.theme.SaveExpatDomain(ctx, &themes.ExpatDomain[i]); err != nil {
			return err
		}
		result.Themes++
	}
	for i := range themes.UlixaiService {
		if err := m.theme.SaveUlixaiService(ctx, &themes.UlixaiService[i]); err != nil {
			return err
		}
		result.Themes++
	}
	return nil
}

func (m *Manager) seedTitles(ctx context.Context, titles []SeedTitle, newID func() string, result *SeedResult) error {
	for _, st := range titles {
		id := st.ID
		if id != "" {
			if _, err := m.title.GetTitle(ctx, id); err == nil {
				result.Skipped++
				continue
			}
		} else {
			id = newID()
		}

		title := &models.ManualTitle{
			ID:            id,
			Title:         st.Title,
			Description:   st.Description,
			PlatformID:    st.PlatformID,
			CountryID:     st.CountryID,
			LanguageCode:  st.LanguageCode,
			CustomContext: st.CustomContext,
			Status:        models.TitleStatusQueued,
		}
		if err := m.title.SaveTitle(ctx, title); err != nil {
			return err
		}
		result.Titles++
	}
	return nil
}
