// Package markdown converts pull request Markdown into HTML that is safe to
// embed in a page.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Converter turns Markdown source into sanitized HTML.
type Converter interface {
	ToHTML(src string) (template.HTML, error)
}

// GoldmarkConverter renders GitHub-flavored Markdown with goldmark and
// sanitizes the result with a bluemonday UGC policy.
type GoldmarkConverter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewConverter creates a converter. Raw HTML in the source is rendered and
// then filtered by the sanitizer, so inline links and line breaks written by
// authors survive while scripts and event handlers do not.
func NewConverter() *GoldmarkConverter {
	return &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// ToHTML converts src and returns sanitized HTML.
func (c *GoldmarkConverter) ToHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(c.policy.SanitizeBytes(buf.Bytes())), nil
}
