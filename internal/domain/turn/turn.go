package turn

import (
	"html"
	"strings"
)

// Part is one content part of a provider turn: free text or inline binary
// data. Parts are transient request state and are never persisted.
type Part struct {
	Text   string
	Inline *InlineData
}

// InlineData carries an attachment's raw bytes and declared media type for
// the provider call.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// Attachment is a normalized upload: the transcript fragment to display and
// the provider part to send. Part is nil for unsupported files, which degrade
// to a display-only notice.
type Attachment struct {
	// Kind is the normalized category label: image, pdf, text, document or
	// unsupported.
	Kind        string
	DisplayHTML string
	Part        *Part
}

// Turn is the ordered content-part list sent to the generation collaborator
// for a single user submission.
type Turn struct {
	Parts []Part
}

// Empty reports whether there is nothing to send to the provider. The
// orchestrator must skip the generation call for empty turns.
func (t Turn) Empty() bool {
	return len(t.Parts) == 0
}

// Build assembles one turn from optional prompt text and an optional
// normalized attachment. Part order is fixed: text first, then attachment.
// The returned fragments are the user-facing transcript entries in the same
// order, one message each.
func Build(prompt string, att *Attachment) (Turn, []string) {
	var t Turn
	var fragments []string

	if text := strings.TrimSpace(prompt); text != "" {
		t.Parts = append(t.Parts, Part{Text: text})
		fragments = append(fragments, html.EscapeString(text))
	}

	if att != nil {
		if att.Part != nil {
			t.Parts = append(t.Parts, *att.Part)
		}
		fragments = append(fragments, att.DisplayHTML)
	}

	return t, fragments
}
