package generation

import (
	"errors"
	"fmt"

	"github.com/ternarybob/scribe/internal/models"
)

var (
	// ErrUnknownGenerator is matched by every UnknownGeneratorError
	ErrUnknownGenerator = errors.New("unknown generator")
	// ErrGenerationFailed is matched by every GenerationError
	ErrGenerationFailed = errors.New("generation failed")
	// ErrTitleNotClaimable is returned when a title is not pending/queued or another worker claimed it first
	ErrTitleNotClaimable = errors.New("title not claimable")
)

// UnknownGeneratorError names a generator family with no implementation
type UnknownGeneratorError struct {
	Family models.GeneratorFamily
}

func (e *UnknownGeneratorError) Error() string {
	return fmt.Sprintf("unknown generator family '%s'", e.Family)
}

func (e *UnknownGeneratorError) Is(target error) bool {
	return target == ErrUnknownGenerator
}

// GenerationError wraps a generator failure with the template it was producing
type GenerationError struct {
	TemplateCode string
	Family       models.GeneratorFamily
	Err          error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generator failed for template '%s': %v", e.Family, e.TemplateCode, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}
