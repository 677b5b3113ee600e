package llm

import (
	"strings"

	"github.com/ternarybob/scribe/internal/common"
)

// Pricing maps model names to their per-million-token prices
type Pricing map[string]common.ModelPricing

// Cost prices a call's token usage. The second result is false when the model has no price.
// Lookup is exact first, then by longest configured prefix (dated model versions share a price).
func (p Pricing) Cost(model string, usage Usage) (float64, bool) {
	price, ok := p.lookup(model)
	if !ok {
		return 0, false
	}
	cost := float64(usage.InputTokens)*price.Input/1e6 + float64(usage.OutputTokens)*price.Output/1e6
	return cost, true
}

func (p Pricing) lookup(model string) (common.ModelPricing, bool) {
	model = strings.ToLower(model)
	if price, ok := p[model]; ok {
		return price, true
	}

	best := ""
	for name := range p {
		if strings.HasPrefix(model, strings.ToLower(name)) && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return common.ModelPricing{}, false
	}
	return p[best], true
}
