package attachment

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"chatterbot-server/internal/domain/turn"
	"chatterbot-server/internal/utils/platformerrors"
)

// Normalize converts an uploaded blob plus its declared media type into a
// transcript fragment and an optional provider part. Dispatch priority:
// declared image types first, then pdf/txt/docx by extension, everything else
// degrades to a display-only "unsupported" notice rather than an error.
func Normalize(ctx context.Context, data []byte, contentType, filename string) (*turn.Attachment, error) {
	lower := strings.ToLower(filename)

	switch {
	case strings.HasPrefix(contentType, "image/"):
		encoded := base64.StdEncoding.EncodeToString(data)
		return &turn.Attachment{
			Kind:        "image",
			DisplayHTML: fmt.Sprintf(`<img src="data:%s;base64,%s" class="uploaded-img" />`, contentType, encoded),
			Part:        &turn.Part{Inline: &turn.InlineData{MIMEType: contentType, Data: data}},
		}, nil

	case strings.HasSuffix(lower, ".pdf"):
		return &turn.Attachment{
			Kind:        "pdf",
			DisplayHTML: "📄 " + html.EscapeString(filename),
			Part:        &turn.Part{Inline: &turn.InlineData{MIMEType: "application/pdf", Data: data}},
		}, nil

	case strings.HasSuffix(lower, ".txt"):
		// Drop undecodable bytes instead of failing the upload.
		text := strings.ToValidUTF8(string(data), "")
		return &turn.Attachment{
			Kind:        "text",
			DisplayHTML: "📄 " + html.EscapeString(filename),
			Part:        &turn.Part{Text: text},
		}, nil

	case strings.HasSuffix(lower, ".docx"):
		text, err := extractDocxText(data)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeAttachment,
				fmt.Sprintf("read document %s", filename), err)
		}
		return &turn.Attachment{
			Kind:        "document",
			DisplayHTML: "📄 " + html.EscapeString(filename),
			Part:        &turn.Part{Text: text},
		}, nil

	default:
		return &turn.Attachment{
			Kind:        "unsupported",
			DisplayHTML: "Unsupported file: " + html.EscapeString(filename),
		}, nil
	}
}
