package turn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTextOnly(t *testing.T) {
	built, fragments := Build("hello", nil)

	require.Len(t, built.Parts, 1)
	assert.Equal(t, "hello", built.Parts[0].Text)
	assert.Equal(t, []string{"hello"}, fragments)
	assert.False(t, built.Empty())
}

func TestBuildTrimsAndEscapesPrompt(t *testing.T) {
	built, fragments := Build("  <b>hi</b>  ", nil)

	require.Len(t, built.Parts, 1)
	assert.Equal(t, "<b>hi</b>", built.Parts[0].Text)
	assert.Equal(t, []string{"&lt;b&gt;hi&lt;/b&gt;"}, fragments)
}

func TestBuildTextBeforeAttachment(t *testing.T) {
	att := &Attachment{
		DisplayHTML: "📄 notes.pdf",
		Part:        &Part{Inline: &InlineData{MIMEType: "application/pdf", Data: []byte("%PDF")}},
	}

	built, fragments := Build("summarize this", att)

	require.Len(t, built.Parts, 2)
	assert.Equal(t, "summarize this", built.Parts[0].Text)
	require.NotNil(t, built.Parts[1].Inline)
	assert.Equal(t, "application/pdf", built.Parts[1].Inline.MIMEType)
	assert.Equal(t, []string{"summarize this", "📄 notes.pdf"}, fragments)
}

func TestBuildUnsupportedAttachmentOnly(t *testing.T) {
	att := &Attachment{DisplayHTML: "Unsupported file: report.xlsx"}

	built, fragments := Build("", att)

	assert.True(t, built.Empty())
	assert.Equal(t, []string{"Unsupported file: report.xlsx"}, fragments)
}

func TestBuildEmpty(t *testing.T) {
	built, fragments := Build("   ", nil)

	assert.True(t, built.Empty())
	assert.Empty(t, fragments)
}
