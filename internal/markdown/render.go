// Package markdown converts provider reply text into transcript HTML.
package markdown

import (
	"bytes"
	stdhtml "html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Hard wraps mirror the original break-on-newline behavior; WithUnsafe keeps
// raw HTML from the provider intact, which the single-trusted-user design
// deliberately allows.
var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

// Render converts markdown (fenced code blocks, tables, line breaks) into an
// HTML fragment. Deterministic: equal input yields equal output.
func Render(source string) string {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(source), &buf); err != nil {
		// Conversion only fails on writer errors, which a bytes.Buffer
		// cannot produce; fall back to escaped text regardless.
		return "<p>" + stdhtml.EscapeString(source) + "</p>"
	}
	return buf.String()
}
