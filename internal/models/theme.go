package models

import "strings"

// ThemeType tags which of the theme-kind entities a title refers to
type ThemeType string

const (
	ThemeTypeTheme           ThemeType = "theme"
	ThemeTypeProviderType    ThemeType = "provider_type"
	ThemeTypeLawyerSpecialty ThemeType = "lawyer_specialty"
	ThemeTypeExpatDomain     ThemeType = "expat_domain"
	ThemeTypeUlixaiService   ThemeType = "ulixai_service"
)

// AllThemeTypes is the closed set of theme kinds
var AllThemeTypes = []ThemeType{
	ThemeTypeTheme,
	ThemeTypeProviderType,
	ThemeTypeLawyerSpecialty,
	ThemeTypeExpatDomain,
	ThemeTypeUlixaiService,
}

// ParseThemeType maps a context tag to a ThemeType. The second result is false for unknown tags.
func ParseThemeType(tag string) (ThemeType, bool) {
	t := ThemeType(strings.ToLower(strings.TrimSpace(tag)))
	for _, known := range AllThemeTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// ThemeEntity is implemented by every theme-kind record
type ThemeEntity interface {
	ThemeKind() ThemeType
	ThemeLabel() string
}

// ThemeRef is the resolved theme triple attached to a GenerationContext.
// Entity is nil when the referenced id does not exist.
type ThemeRef struct {
	Type   ThemeType   `json:"theme_type"`
	ID     int64       `json:"theme_id"`
	Entity ThemeEntity `json:"theme,omitempty"`
}

// Theme is a generic editorial theme
type Theme struct {
	ID          int64  `json:"id" yaml:"id" badgerhold:"key"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description" yaml:"description"`
}

func (t *Theme) ThemeKind() ThemeType { return ThemeTypeTheme }
func (t *Theme) ThemeLabel() string   { return t.Name }

// ProviderType is a category of service provider (lawyer, translator, ...)
type ProviderType struct {
	ID   int64  `json:"id" yaml:"id" badgerhold:"key"`
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
	Icon string `json:"icon,omitempty" yaml:"icon"`
}

func (p *ProviderType) ThemeKind() ThemeType { return ThemeTypeProviderType }
func (p *ProviderType) ThemeLabel() string   { return p.Name }

// LawyerSpecialty is a legal practice area
type LawyerSpecialty struct {
	ID       int64  `json:"id" yaml:"id" badgerhold:"key"`
	Name     string `json:"name" yaml:"name"`
	Slug     string `json:"slug" yaml:"slug"`
	Category string `json:"category,omitempty" yaml:"category"`
}

func (l *LawyerSpecialty) ThemeKind() ThemeType { return ThemeTypeLawyerSpecialty }
func (l *LawyerSpecialty) ThemeLabel() string   { return l.Name }

// ExpatDomain is an expatriation topic (visa, housing, healthcare, ...)
type ExpatDomain struct {
	ID   int64  `json:"id" yaml:"id" badgerhold:"key"`
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

func (e *ExpatDomain) ThemeKind() ThemeType { return ThemeTypeExpatDomain }
func (e *ExpatDomain) ThemeLabel() string   { return e.Name }

// UlixaiService is a service offered on the Ulixai marketplace
type UlixaiService struct {
	ID       int64  `json:"id" yaml:"id" badgerhold:"key"`
	Name     string `json:"name" yaml:"name"`
	Slug     string `json:"slug" yaml:"slug"`
	ParentID int64  `json:"parent_id,omitempty" yaml:"parent_id"`
}

func (u *UlixaiService) ThemeKind() ThemeType { return ThemeTypeUlixaiService }
func (u *UlixaiService) ThemeLabel() string   { return u.Name }
