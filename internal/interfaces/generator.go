package interfaces

import (
	"context"

	"github.com/ternarybob/scribe/internal/models"
)

// Generator produces an article from a generation context.
// Implementations may block on an external AI provider.
type Generator interface {
	Generate(ctx context.Context, genCtx *models.GenerationContext) (*models.Article, error)
}

// TemplateDetector picks a registered template code for free text
type TemplateDetector interface {
	DetectOptimalTemplate(title, description string) string
}
