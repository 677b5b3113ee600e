package generation

import "github.com/ternarybob/scribe/internal/models"

// DefaultCost is charged when neither the article nor the template provides a cost
const DefaultCost = 0.05

// CostEstimator decides the cost recorded on a completed request
type CostEstimator struct {
	DefaultCost float64
}

// NewCostEstimator returns an estimator with the given fallback; a negative fallback uses DefaultCost
func NewCostEstimator(defaultCost float64) CostEstimator {
	if defaultCost < 0 {
		defaultCost = DefaultCost
	}
	return CostEstimator{DefaultCost: defaultCost}
}

// Estimate prefers the article's recorded cost when positive, then the template estimate, then the default
func (e CostEstimator) Estimate(article *models.Article, cfg models.TemplateConfig) float64 {
	if article != nil && article.GenerationCost > 0 {
		return article.GenerationCost
	}
	if estimated, ok := cfg.EstimatedCost(); ok {
		return estimated
	}
	return e.DefaultCost
}
