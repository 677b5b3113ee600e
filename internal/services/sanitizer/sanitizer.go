package sanitizer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Sanitize returns html reduced to what the policy allows.
// Comments are removed, dangerous elements are dropped with their content and other unknown elements are unwrapped.
func (p *Policy) Sanitize(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		// Parsing only fails on reader errors; never return unsanitized input
		return html.EscapeString(input)
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return ""
	}
	p.clean(body.Get(0))

	out, err := body.Html()
	if err != nil {
		return html.EscapeString(input)
	}
	return strings.TrimSpace(out)
}

// clean filters the children of n in place
func (p *Policy) clean(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling

		switch c.Type {
		case html.CommentNode, html.DoctypeNode:
			n.RemoveChild(c)
		case html.ElementNode:
			tag := strings.ToLower(c.Data)
			switch {
			case droppedElements[tag]:
				n.RemoveChild(c)
			case p.allowsElement(tag):
				p.cleanAttributes(c, tag)
				p.clean(c)
			default:
				p.clean(c)
				unwrap(n, c)
			}
		}

		c = next
	}
}

// unwrap replaces c with its children
func unwrap(parent, c *html.Node) {
	for child := c.FirstChild; child != nil; {
		next := child.NextSibling
		c.RemoveChild(child)
		parent.InsertBefore(child, c)
		child = next
	}
	parent.RemoveChild(c)
}

func (p *Policy) cleanAttributes(n *html.Node, tag string) {
	kept := n.Attr[:0]
	hasBlankTarget := false

	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if attr.Namespace != "" || strings.HasPrefix(key, "on") || !p.allowsAttribute(tag, key) {
			continue
		}
		if urlAttributes[key] && !p.safeURL(attr.Val) {
			continue
		}
		if key == "target" && attr.Val == "_blank" {
			hasBlankTarget = true
		}
		kept = append(kept, html.Attribute{Key: key, Val: attr.Val})
	}

	if hasBlankTarget {
		kept = setAttribute(kept, "rel", "noopener noreferrer")
	}
	n.Attr = kept
}

func setAttribute(attrs []html.Attribute, key, val string) []html.Attribute {
	for i := range attrs {
		if attrs[i].Key == key {
			attrs[i].Val = val
			return attrs
		}
	}
	return append(attrs, html.Attribute{Key: key, Val: val})
}

// safeURL allows relative and fragment URLs and absolute URLs with an allowed scheme
func (p *Policy) safeURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		// A colon before any slash without a parsed scheme means an obfuscated scheme
		if i := strings.IndexByte(raw, ':'); i >= 0 && !strings.ContainsAny(raw[:i], "/?#") {
			return false
		}
		return true
	}
	return p.allowsScheme(u.Scheme)
}
