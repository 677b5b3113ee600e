package generators

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/scribe/internal/services/transform"
)

const excerptLength = 200

// draft is the JSON object the model is asked to return
type draft struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
}

// parseDraft reads the model answer leniently: fences are stripped, a JSON object embedded in
// prose is extracted, and a non-JSON answer is taken as the content itself
func parseDraft(text string) *draft {
	text = transform.StripCodeFences(text)

	var d draft
	if err := json.Unmarshal([]byte(text), &d); err == nil {
		return d.trimmed()
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &d); err == nil {
			return d.trimmed()
		}
	}

	return &draft{Content: strings.TrimSpace(text)}
}

func (d draft) trimmed() *draft {
	return &draft{
		Title:   strings.TrimSpace(d.Title),
		Excerpt: strings.TrimSpace(d.Excerpt),
		Content: strings.TrimSpace(d.Content),
	}
}

// excerptFrom takes the first paragraph of markdown that is not a heading, table or list
func excerptFrom(markdown string) string {
	for _, block := range strings.Split(markdown, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" || strings.HasPrefix(block, "#") || strings.HasPrefix(block, "|") ||
			strings.HasPrefix(block, "-") || strings.HasPrefix(block, "*") {
			continue
		}
		block = strings.Join(strings.Fields(block), " ")
		if utf8.RuneCountInString(block) <= excerptLength {
			return block
		}
		runes := []rune(block)
		cut := string(runes[:excerptLength])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		return cut + "…"
	}
	return ""
}
