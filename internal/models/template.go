package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// GeneratorFamily names a generator implementation
type GeneratorFamily string

const (
	GeneratorPillar      GeneratorFamily = "pillar"
	GeneratorComparative GeneratorFamily = "comparative"
	GeneratorStandard    GeneratorFamily = "standard"
)

// AllGeneratorFamilies lists every family that has an implementation
var AllGeneratorFamilies = []GeneratorFamily{GeneratorPillar, GeneratorComparative, GeneratorStandard}

// ConfigKeyEstimatedCost is the template config key carrying the default cost estimate
const ConfigKeyEstimatedCost = "estimated_cost"

// TemplateDefinition describes one content template, loaded from TOML
type TemplateDefinition struct {
	Code          string                 `toml:"code" validate:"required,max=64"`
	Name          string                 `toml:"name" validate:"required"`
	Generator     GeneratorFamily        `toml:"generator" validate:"required"`
	EstimatedCost *float64               `toml:"estimated_cost" validate:"omitempty,gte=0"`
	Keywords      []string               `toml:"keywords"`
	Priority      int                    `toml:"priority"`
	Default       bool                   `toml:"default"`
	Prompt        string                 `toml:"prompt" validate:"required"`
	Sections      int                    `toml:"sections" validate:"gte=0"`
	Config        map[string]interface{} `toml:"config"`
}

// TemplateConfig is the arbitrary configuration payload handed to generators
type TemplateConfig map[string]interface{}

// EstimatedCost returns the configured estimate when present and numeric
func (c TemplateConfig) EstimatedCost() (float64, bool) {
	if c == nil {
		return 0, false
	}
	return ToFloat(c[ConfigKeyEstimatedCost])
}

// String returns a string config value or the fallback
func (c TemplateConfig) String(key, fallback string) string {
	if v, ok := c[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Int returns an integer config value or the fallback
func (c TemplateConfig) Int(key string, fallback int) int {
	if f, ok := ToFloat(c[key]); ok {
		return int(f)
	}
	return fallback
}

// ToFloat converts the numeric shapes produced by TOML, JSON and gob decoding to float64
func ToFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ToInt64 converts an integral value in any of the decoded numeric shapes to int64
func ToInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	f, ok := ToFloat(v)
	// float64(math.MaxInt64) rounds up to 2^63, which is out of range
	if !ok || f < math.MinInt64 || f >= math.MaxInt64 || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
