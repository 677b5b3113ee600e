package sanitizer

import (
	"fmt"
	"strings"
)

// Policy is an allowlist of elements, their attributes and the URL schemes links may use
type Policy struct {
	Name string
	// Elements maps an allowed tag to its allowed attributes
	Elements map[string][]string
	// Schemes lists allowed URL schemes for href/src; relative and fragment URLs are always allowed
	Schemes []string
}

// droppedElements are removed together with their content; every other disallowed element is unwrapped
var droppedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"iframe":   true,
	"frame":    true,
	"frameset": true,
	"object":   true,
	"embed":    true,
	"applet":   true,
	"form":     true,
	"input":    true,
	"button":   true,
	"select":   true,
	"textarea": true,
	"noscript": true,
	"template": true,
	"svg":      true,
	"math":     true,
	"link":     true,
	"meta":     true,
	"base":     true,
	"title":    true,
}

// urlAttributes are checked against the scheme allowlist
var urlAttributes = map[string]bool{
	"href": true,
	"src":  true,
}

// DefaultPolicy allows article structure, links, images and tables
func DefaultPolicy() *Policy {
	p := &Policy{
		Name:     "default",
		Elements: map[string][]string{},
		Schemes:  []string{"http", "https", "mailto"},
	}

	structural := []string{
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "ul", "ol", "li", "blockquote", "pre", "code",
		"strong", "em", "b", "i", "u", "s", "sub", "sup",
		"span", "div", "section", "article", "figure", "figcaption",
	}
	for _, tag := range structural {
		p.Elements[tag] = nil
	}
	for _, tag := range []string{"h2", "h3", "h4"} {
		p.Elements[tag] = []string{"id"}
	}

	p.Elements["a"] = []string{"href", "title", "rel", "target"}
	p.Elements["img"] = []string{"src", "alt", "title", "width", "height"}

	for _, tag := range []string{"table", "thead", "tbody", "tfoot", "tr", "caption"} {
		p.Elements[tag] = nil
	}
	p.Elements["th"] = []string{"colspan", "rowspan", "scope"}
	p.Elements["td"] = []string{"colspan", "rowspan"}

	return p
}

// StrictPolicy allows paragraphs, emphasis and links only
func StrictPolicy() *Policy {
	return &Policy{
		Name: "strict",
		Elements: map[string][]string{
			"p":      nil,
			"br":     nil,
			"strong": nil,
			"em":     nil,
			"b":      nil,
			"i":      nil,
			"a":      {"href", "title"},
		},
		Schemes: []string{"http", "https", "mailto"},
	}
}

// PolicyByName returns the named policy; an empty name is the default policy
func PolicyByName(name string) (*Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultPolicy(), nil
	case "strict":
		return StrictPolicy(), nil
	default:
		return nil, fmt.Errorf("unknown sanitize policy '%s'", name)
	}
}

func (p *Policy) allowsElement(tag string) bool {
	_, ok := p.Elements[tag]
	return ok
}

func (p *Policy) allowsAttribute(tag, attr string) bool {
	for _, allowed := range p.Elements[tag] {
		if allowed == attr {
			return true
		}
	}
	return false
}

func (p *Policy) allowsScheme(scheme string) bool {
	for _, allowed := range p.Schemes {
		if strings.EqualFold(allowed, scheme) {
			return true
		}
	}
	return false
}
