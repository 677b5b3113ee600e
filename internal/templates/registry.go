// Package templates provides the registry of content templates.
// Definitions are embedded TOML files with user override support, resolved in order:
// 1. User override: templatesDir/{code}.toml
// 2. Embedded default: internal/templates/{code}.toml
// Files in templatesDir that have no embedded counterpart are added as new templates.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/scribe/internal/models"
)

//go:embed *.toml
var fs embed.FS

// ErrTemplateNotFound is matched by every NotFoundError
var ErrTemplateNotFound = errors.New("template not found")

// NotFoundError carries the unknown template code
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template '%s' not found", e.Code)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// Registry is a read-only lookup of template definitions by code
type Registry struct {
	definitions map[string]models.TemplateDefinition
	codes       []string
	defaultCode string
}

var validate = validator.New()

// Load builds a registry from the embedded definitions and the optional user override directory
func Load(templatesDir string) (*Registry, error) {
	raw := map[string][]byte{}

	names, err := ListEmbeddedTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	for _, name := range names {
		data, err := fs.ReadFile(name + ".toml")
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded template '%s': %w", name, err)
		}
		raw[name] = data
	}

	if templatesDir != "" {
		entries, err := os.ReadDir(templatesDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read templates dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(templatesDir, entry.Name()))
			if err != nil {
				return nil, fmt.Errorf("failed to read template override '%s': %w", entry.Name(), err)
			}
			raw[strings.TrimSuffix(entry.Name(), ".toml")] = data
		}
	}

	definitions := make([]models.TemplateDefinition, 0, len(raw))
	for name, data := range raw {
		def, err := parseDefinition(data)
		if err != nil {
			return nil, fmt.Errorf("template '%s': %w", name, err)
		}
		if def.Code == "" {
			def.Code = name
		}
		definitions = append(definitions, *def)
	}

	return NewRegistry(definitions)
}

// NewRegistry validates the definitions and builds a registry.
// Codes must be unique, generators must be known families, and exactly one definition is the default.
func NewRegistry(definitions []models.TemplateDefinition) (*Registry, error) {
	r := &Registry{definitions: make(map[string]models.TemplateDefinition, len(definitions))}

	for _, def := range definitions {
		if err := validate.Struct(def); err != nil {
			return nil, fmt.Errorf("invalid template '%s': %w", def.Code, err)
		}
		if !knownFamily(def.Generator) {
			return nil, fmt.Errorf("invalid template '%s': unknown generator family '%s'", def.Code, def.Generator)
		}
		if _, dup := r.definitions[def.Code]; dup {
			return nil, fmt.Errorf("duplicate template code '%s'", def.Code)
		}
		if def.Default {
			if r.defaultCode != "" {
				return nil, fmt.Errorf("templates '%s' and '%s' are both marked default", r.defaultCode, def.Code)
			}
			r.defaultCode = def.Code
		}
		r.definitions[def.Code] = def
		r.codes = append(r.codes, def.Code)
	}

	if r.defaultCode == "" {
		return nil, fmt.Errorf("no default template defined")
	}
	sort.Strings(r.codes)
	return r, nil
}

func knownFamily(family models.GeneratorFamily) bool {
	for _, f := range models.AllGeneratorFamilies {
		if f == family {
			return true
		}
	}
	return false
}

// Exists reports whether code is registered
func (r *Registry) Exists(code string) bool {
	_, ok := r.definitions[code]
	return ok
}

// Definition returns a copy of the registered definition
func (r *Registry) Definition(code string) (models.TemplateDefinition, error) {
	def, ok := r.definitions[code]
	if !ok {
		return models.TemplateDefinition{}, &NotFoundError{Code: code}
	}
	return def, nil
}

// Definitions returns all definitions ordered by code
func (r *Registry) Definitions() []models.TemplateDefinition {
	defs := make([]models.TemplateDefinition, 0, len(r.codes))
	for _, code := range r.codes {
		defs = append(defs, r.definitions[code])
	}
	return defs
}

// Codes returns all registered codes in sorted order
func (r *Registry) Codes() []string {
	return append([]string(nil), r.codes...)
}

// DefaultCode is the fallback template used when detection finds no signal
func (r *Registry) DefaultCode() string {
	return r.defaultCode
}

// Config returns a fresh copy of the template's configuration payload.
// estimated_cost is included whenever the definition declares one.
func (r *Registry) Config(code string) (models.TemplateConfig, error) {
	def, ok := r.definitions[code]
	if !ok {
		return nil, &NotFoundError{Code: code}
	}

	cfg := make(models.TemplateConfig, len(def.Config)+4)
	for k, v := range def.Config {
		cfg[k] = v
	}
	cfg["name"] = def.Name
	cfg["generator"] = string(def.Generator)
	if def.Sections > 0 {
		cfg["sections"] = def.Sections
	}
	if def.EstimatedCost != nil {
		cfg[models.ConfigKeyEstimatedCost] = *def.EstimatedCost
	}
	return cfg, nil
}

// GeneratorFamily returns the generator family a template is produced by
func (r *Registry) GeneratorFamily(code string) (models.GeneratorFamily, error) {
	def, ok := r.definitions[code]
	if !ok {
		return "", &NotFoundError{Code: code}
	}
	return def.Generator, nil
}

// GetEmbeddedTemplate loads raw content from embedded templates (for testing)
func GetEmbeddedTemplate(name string) ([]byte, error) {
	return fs.ReadFile(name + ".toml")
}

// ListEmbeddedTemplates returns names of all embedded templates
func ListEmbeddedTemplates() ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			name := entry.Name()
			// Remove .toml extension
			if len(name) > 5 && name[len(name)-5:] == ".toml" {
				names = append(names, name[:len(name)-5])
			}
		}
	}
	return names, nil
}

func parseDefinition(data []byte) (*models.TemplateDefinition, error) {
	var def models.TemplateDefinition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &def, nil
}
