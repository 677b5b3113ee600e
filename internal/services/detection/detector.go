package detection

import (
	"sort"
	"strings"
	"unicode"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	titleWeight       = 3
	descriptionWeight = 1
)

// TemplateSource is the subset of the template registry the detector reads
type TemplateSource interface {
	Definitions() []models.TemplateDefinition
	DefaultCode() string
}

// Detector picks a template code for free text by keyword scoring.
// It only ever returns codes taken from the registry it was built from.
type Detector struct {
	rules       []rule
	defaultCode string
	logger      arbor.ILogger
}

type rule struct {
	code     string
	priority int
	keywords []string // folded, space padded
}

// NewDetector compiles keyword rules from every registered template
func NewDetector(source TemplateSource, logger arbor.ILogger) *Detector {
	d := &Detector{
		defaultCode: source.DefaultCode(),
		logger:      logger,
	}

	for _, def := range source.Definitions() {
		r := rule{code: def.Code, priority: def.Priority}
		for _, kw := range def.Keywords {
			folded := fold(kw)
			if folded == "" {
				continue
			}
			r.keywords = append(r.keywords, " "+folded+" ")
		}
		d.rules = append(d.rules, r)
	}

	// Highest priority first, then code, so the first best score wins deterministically
	sort.SliceStable(d.rules, func(i, j int) bool {
		if d.rules[i].priority != d.rules[j].priority {
			return d.rules[i].priority > d.rules[j].priority
		}
		return d.rules[i].code < d.rules[j].code
	})

	return d
}

// DetectOptimalTemplate returns the best-scoring template code, or the default when no keyword matches
func (d *Detector) DetectOptimalTemplate(title, description string) string {
	paddedTitle := " " + fold(title) + " "
	paddedDescription := " " + fold(description) + " "

	bestCode := d.defaultCode
	bestScore := 0

	for _, r := range d.rules {
		score := 0
		for _, kw := range r.keywords {
			score += titleWeight * strings.Count(paddedTitle, kw)
			score += descriptionWeight * strings.Count(paddedDescription, kw)
		}
		if score > bestScore {
			bestScore = score
			bestCode = r.code
		}
	}

	if d.logger != nil {
		d.logger.Debug().
			Str("title", title).
			Str("template", bestCode).
			Int("score", bestScore).
			Msg("Template detected")
	}

	return bestCode
}

// fold lowercases, strips diacritics and reduces the text to single-space separated words
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	space := true
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}
