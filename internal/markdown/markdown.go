// Package markdown wraps the Goldmark renderer behind the single function the
// page pipeline needs.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// md is configured once: GFM tables/strikethrough/autolinks, generated
// heading anchors, and raw HTML passed through untouched (page bodies embed
// their own markup).
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

// htmlComments matches literal HTML comments and their entity-encoded
// equivalent, both of which are stripped from rendered output so authoring
// notes never reach the published page.
var htmlComments = regexp.MustCompile(`(?s)<!--.*?-->|<!&ndash;.*?&ndash;>`)

// Render converts Markdown source to HTML.
func Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("markdown conversion: %w", err)
	}
	return StripComments(buf.String()), nil
}

// StripComments removes HTML comments from rendered output, in both their
// literal and entity-encoded forms.
func StripComments(s string) string {
	return htmlComments.ReplaceAllString(s, "")
}
