package generation

import (
	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
)

// Dispatcher maps a generator family to its implementation
type Dispatcher struct {
	pillar      interfaces.Generator
	comparative interfaces.Generator
	standard    interfaces.Generator
}

// NewDispatcher creates a dispatcher over the three generator families
func NewDispatcher(pillar, comparative, standard interfaces.Generator) *Dispatcher {
	return &Dispatcher{
		pillar:      pillar,
		comparative: comparative,
		standard:    standard,
	}
}

// Resolve returns the generator for family or an *UnknownGeneratorError
func (d *Dispatcher) Resolve(family models.GeneratorFamily) (interfaces.Generator, error) {
	var generator interfaces.Generator
	switch family {
	case models.GeneratorPillar:
		generator = d.pillar
	case models.GeneratorComparative:
		generator = d.comparative
	case models.GeneratorStandard:
		generator = d.standard
	}
	if generator == nil {
		return nil, &UnknownGeneratorError{Family: family}
	}
	return generator, nil
}
