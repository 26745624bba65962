package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderParagraph(t *testing.T) {
	out := Render("hello world")
	assert.Equal(t, "<p>hello world</p>\n", out)
}

func TestRenderLineBreaks(t *testing.T) {
	out := Render("line one\nline two")
	assert.Contains(t, out, "<br>")
}

func TestRenderFencedCodeBlock(t *testing.T) {
	out := Render("```go\nfmt.Println(\"hi\")\n```")
	assert.Contains(t, out, "<pre><code")
	assert.Contains(t, out, "fmt.Println")
}

func TestRenderTable(t *testing.T) {
	out := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>1</td>")
}

func TestRenderKeepsRawHTML(t *testing.T) {
	// The provider is trusted in this design; markup passes through verbatim.
	out := Render(`before <img src="x"> after`)
	assert.Contains(t, out, `<img src="x">`)
}

func TestRenderDeterministic(t *testing.T) {
	const input = "# Title\n\nsome *text* with `code`"
	assert.Equal(t, Render(input), Render(input))
}
