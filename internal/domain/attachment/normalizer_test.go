package attachment

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatterbot-server/internal/utils/platformerrors"
)

func TestNormalizeImage(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4e, 0x47}

	att, err := Normalize(context.Background(), data, "image/png", "photo.png")
	require.NoError(t, err)

	require.NotNil(t, att.Part)
	require.NotNil(t, att.Part.Inline)
	assert.Equal(t, "image/png", att.Part.Inline.MIMEType)
	assert.Equal(t, data, att.Part.Inline.Data)

	encoded := base64.StdEncoding.EncodeToString(data)
	assert.Contains(t, att.DisplayHTML, "data:image/png;base64,"+encoded)
	assert.Contains(t, att.DisplayHTML, "<img")
	assert.Equal(t, "image", att.Kind)
}

func TestNormalizePDF(t *testing.T) {
	data := []byte("%PDF-1.4")

	att, err := Normalize(context.Background(), data, "application/octet-stream", "Report.PDF")
	require.NoError(t, err)

	require.NotNil(t, att.Part)
	require.NotNil(t, att.Part.Inline)
	assert.Equal(t, "application/pdf", att.Part.Inline.MIMEType)
	assert.Equal(t, "📄 Report.PDF", att.DisplayHTML)
}

func TestNormalizeTxt(t *testing.T) {
	// Invalid UTF-8 bytes are dropped, not fatal.
	data := append([]byte("hello "), 0xff, 0xfe)
	data = append(data, []byte("world")...)

	att, err := Normalize(context.Background(), data, "text/plain", "notes.txt")
	require.NoError(t, err)

	require.NotNil(t, att.Part)
	assert.Equal(t, "hello world", att.Part.Text)
	assert.Equal(t, "📄 notes.txt", att.DisplayHTML)
}

func TestNormalizeDocx(t *testing.T) {
	docx := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	att, err := Normalize(context.Background(), docx, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "memo.docx")
	require.NoError(t, err)

	require.NotNil(t, att.Part)
	assert.Equal(t, "First paragraph\nSecond paragraph", att.Part.Text)
	assert.Equal(t, "📄 memo.docx", att.DisplayHTML)
}

func TestNormalizeDocxInvalidArchive(t *testing.T) {
	_, err := Normalize(context.Background(), []byte("not a zip"), "", "memo.docx")
	require.Error(t, err)
	assert.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeAttachment))
}

func TestNormalizeDocxMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Normalize(context.Background(), buf.Bytes(), "", "memo.docx")
	require.Error(t, err)
	assert.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeAttachment))
}

func TestNormalizeUnsupported(t *testing.T) {
	att, err := Normalize(context.Background(), []byte("data"), "application/octet-stream", "report.xlsx")
	require.NoError(t, err)

	assert.Nil(t, att.Part)
	assert.Equal(t, "Unsupported file: report.xlsx", att.DisplayHTML)
	assert.Equal(t, "unsupported", att.Kind)
}

func TestNormalizeEscapesFilename(t *testing.T) {
	att, err := Normalize(context.Background(), nil, "", `<script>.xlsx`)
	require.NoError(t, err)

	assert.Equal(t, "Unsupported file: &lt;script&gt;.xlsx", att.DisplayHTML)
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
