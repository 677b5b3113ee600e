package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_DropsDangerousElementsWithContent(t *testing.T) {
	p := DefaultPolicy()

	out := p.Sanitize(`<p>Avant</p><script>alert("x")</script><iframe src="https://evil.example"></iframe><form><input name="q"></form><p>Après</p>`)

	assert.Contains(t, out, "<p>Avant</p>")
	assert.Contains(t, out, "<p>Après</p>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, "iframe")
	assert.NotContains(t, out, "form")
	assert.NotContains(t, out, "input")
}

func TestSanitize_UnwrapsUnknownElements(t *testing.T) {
	p := DefaultPolicy()

	out := p.Sanitize(`<p><font color="red">texte <strong>important</strong></font></p>`)

	assert.Equal(t, "<p>texte <strong>important</strong></p>", out)
}

func TestSanitize_RemovesCommentsAndEventHandlers(t *testing.T) {
	p := DefaultPolicy()

	out := p.Sanitize(`<!-- note --><p onclick="steal()" class="x">Bonjour</p>`)

	assert.Equal(t, "<p>Bonjour</p>", out)
}

func TestSanitize_URLSchemes(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name     string
		href     string
		expected bool
	}{
		{"https", "https://example.com/visa", true},
		{"http", "http://example.com", true},
		{"mailto", "mailto:contact@example.com", true},
		{"relative", "/guides/visa", true},
		{"fragment", "#section-2", true},
		{"javascript", "javascript:alert(1)", false},
		{"javascript mixed case", "JaVaScRiPt:alert(1)", false},
		{"data", "data:text/html;base64,PHNjcmlwdD4=", false},
		{"vbscript", "vbscript:msgbox", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := p.Sanitize(`<a href="` + tt.href + `">lien</a>`)
			assert.Contains(t, out, "lien")
			if tt.expected {
				assert.Contains(t, out, `href="`+tt.href+`"`)
			} else {
				assert.NotContains(t, out, "href")
			}
		})
	}
}

func TestSanitize_BlankTargetGetsRel(t *testing.T) {
	p := DefaultPolicy()

	out := p.Sanitize(`<a href="https://example.com" target="_blank">lien</a>`)

	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, `rel="noopener noreferrer"`)
}

func TestSanitize_KeepsTables(t *testing.T) {
	p := DefaultPolicy()

	out := p.Sanitize(`<table><thead><tr><th scope="col" style="color:red">Option</th></tr></thead><tbody><tr><td>A</td></tr></tbody></table>`)

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, `<th scope="col">Option</th>`)
	assert.Contains(t, out, "<td>A</td>")
	assert.NotContains(t, out, "style")
}

func TestSanitize_StrictPolicy(t *testing.T) {
	p := StrictPolicy()

	out := p.Sanitize(`<h2>Titre</h2><p>Texte <em>clé</em></p><img src="https://example.com/a.png">`)

	assert.Equal(t, "Titre<p>Texte <em>clé</em></p>", out)
}

func TestSanitize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", DefaultPolicy().Sanitize("   "))
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, "default", p.Name)

	p, err = PolicyByName("Strict")
	require.NoError(t, err)
	assert.Equal(t, "strict", p.Name)

	_, err = PolicyByName("permissive")
	assert.Error(t, err)
}
