package transform

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Service converts article bodies between markdown and HTML
type Service struct {
	logger   arbor.ILogger
	markdown goldmark.Markdown
}

// NewService creates a new transform service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM, // tables, strikethrough, autolinks
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// MarkdownToHTML renders markdown (as produced by the model) to HTML.
// Outer code fences and YAML frontmatter are stripped first. Raw HTML in the source is escaped by goldmark.
func (s *Service) MarkdownToHTML(markdown string) (string, error) {
	markdown = StripFrontmatter(StripCodeFences(markdown))
	if markdown == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(markdown), &buf); err != nil {
		s.logger.Error().Err(err).Int("input_len", len(markdown)).Msg("Failed to convert markdown to HTML")
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	s.logger.Debug().
		Int("markdown_len", len(markdown)).
		Int("html_len", buf.Len()).
		Msg("Markdown converted to HTML")

	return buf.String(), nil
}

// HTMLToMarkdown converts HTML content to markdown
// baseURL is used for resolving relative links
func (s *Service) HTMLToMarkdown(html string, baseURL string) (string, error) {
	if html == "" {
		return "", nil
	}

	domain, options := converterOptions(baseURL)
	mdConverter := md.NewConverter(domain, true, options)
	mdConverter.Use(plugin.GitHubFlavored()) // tables survive as pipe tables
	converted, err := mdConverter.ConvertString(html)
	if err != nil {
		s.logger.Warn().Err(err).Msg("HTML to markdown conversion failed, using fallback")
		return stripHTMLTags(html), nil
	}

	if strings.TrimSpace(converted) == "" {
		s.logger.Warn().
			Int("html_length", len(html)).
			Msg("HTML to markdown conversion produced empty output, applying fallback")
		return stripHTMLTags(html), nil
	}

	return converted, nil
}

// converterOptions splits baseURL into the bare domain the converter expects and,
// when baseURL carries a scheme, a resolver that keeps that scheme for relative links.
func converterOptions(baseURL string) (string, *md.Options) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return "", nil
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return md.DomainFromURL(baseURL), nil
	}

	return base.Host, &md.Options{
		GetAbsoluteURL: func(selec *goquery.Selection, rawURL string, domain string) string {
			ref, err := url.Parse(rawURL)
			if err != nil || ref.Scheme == "data" {
				return rawURL
			}
			if ref.Scheme != "" && ref.Host != "" {
				return rawURL
			}
			return base.ResolveReference(ref).String()
		},
	}
}

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// stripHTMLTags removes basic HTML tags for fallback cases
func stripHTMLTags(htmlStr string) string {
	stripped := tagRe.ReplaceAllString(htmlStr, "")
	cleaned := spaceRe.ReplaceAllString(stripped, " ")

	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", "\"",
		"&#39;", "'",
		"&nbsp;", " ",
	)
	return strings.TrimSpace(replacer.Replace(cleaned))
}

// StripCodeFences removes a code fence wrapping the entire content.
// Models often return ```markdown ... ``` or ```json ... ```; an unclosed opening fence is dropped too.
func StripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	firstNewline := strings.Index(content, "\n")
	if firstNewline == -1 {
		return strings.TrimSpace(strings.Trim(content, "`"))
	}

	body := content[firstNewline+1:]
	trimmedEnd := strings.TrimRight(body, " \t\n\r")
	if strings.HasSuffix(trimmedEnd, "```") {
		trimmedEnd = strings.TrimSuffix(trimmedEnd, "```")
	}
	return strings.TrimSpace(trimmedEnd)
}

// StripFrontmatter removes YAML frontmatter delimited by --- at the start of the content
func StripFrontmatter(markdown string) string {
	if !strings.HasPrefix(markdown, "---\n") {
		return markdown
	}

	endIdx := strings.Index(markdown[4:], "\n---\n")
	if endIdx == -1 {
		return markdown
	}

	return strings.TrimSpace(markdown[4+endIdx+5:])
}
