package generators

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/ternarybob/scribe/internal/models"
)

const responseFormatInstruction = `Respond with a single JSON object and nothing else:
{"title": "final title", "excerpt": "one or two sentence summary", "content": "the article body"}`

// renderPrompt executes the template prompt against the context map.
// Template config keys are exposed at the top level unless a context key already uses the name.
func renderPrompt(def models.TemplateDefinition, genCtx *models.GenerationContext) (string, error) {
	tmpl, err := template.New(def.Code).Option("missingkey=zero").Parse(def.Prompt)
	if err != nil {
		return "", fmt.Errorf("invalid prompt in template %s: %w", def.Code, err)
	}

	data := genCtx.ToMap()
	for key, value := range genCtx.TemplateConfig {
		if _, exists := data[key]; !exists {
			data[key] = value
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt for template %s: %w", def.Code, err)
	}
	return buf.String(), nil
}
