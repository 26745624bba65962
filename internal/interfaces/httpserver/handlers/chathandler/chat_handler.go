package chathandler

import (
	"context"
	"html"

	"github.com/rs/zerolog"

	"chatterbot-server/internal/domain/attachment"
	"chatterbot-server/internal/domain/chat"
	"chatterbot-server/internal/domain/title"
	"chatterbot-server/internal/domain/turn"
	"chatterbot-server/internal/infrastructure/metrics"
	"chatterbot-server/internal/markdown"
)

// Provider is the generative-language collaborator: multi-turn generation for
// the chat flow and one-shot summarization for the titler.
type Provider interface {
	Generate(ctx context.Context, history []chat.Message, t turn.Turn) (string, error)
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Upload is a received multipart file, fully read into memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ChatHandler orchestrates the conversation lifecycle: resolving the active
// conversation, normalizing uploads, calling the provider, rendering replies
// and persisting the resulting transcript in one store cycle.
type ChatHandler struct {
	chats    *chat.Service
	provider Provider
	titler   *title.Titler
	logger   zerolog.Logger
}

func NewChatHandler(chats *chat.Service, provider Provider, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chats:    chats,
		provider: provider,
		titler:   title.NewTitler(provider, logger),
		logger:   logger,
	}
}

// TranscriptView resolves the document and the conversation to display.
// Requesting an unknown or absent id falls back to the most recent
// conversation; an empty store gets one created as a side effect so the page
// always has something to show.
func (h *ChatHandler) TranscriptView(ctx context.Context, requestedID string) (*chat.Document, string, error) {
	doc := h.chats.Snapshot()

	if len(doc.Conversations) == 0 {
		var err error
		doc, err = h.chats.Update(ctx, func(d *chat.Document) error {
			_, createErr := d.Create()
			return createErr
		})
		if err != nil {
			return nil, "", err
		}
		metrics.ConversationsCreatedTotal.Inc()
	}

	current := doc.Get(requestedID)
	if current == nil {
		current = doc.Latest()
	}
	return doc, current.ID, nil
}

// NewChat creates an empty conversation and returns its id.
func (h *ChatHandler) NewChat(ctx context.Context) (string, error) {
	var id string
	_, err := h.chats.Update(ctx, func(d *chat.Document) error {
		conv, createErr := d.Create()
		if createErr != nil {
			return createErr
		}
		id = conv.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	metrics.ConversationsCreatedTotal.Inc()
	return id, nil
}

// Delete removes the conversation and its transcript. Unknown ids succeed.
func (h *ChatHandler) Delete(ctx context.Context, id string) error {
	_, err := h.chats.Update(ctx, func(d *chat.Document) error {
		d.Delete(id)
		return nil
	})
	return err
}

// Rename sets the conversation name to the trimmed input. Unknown ids succeed.
func (h *ChatHandler) Rename(ctx context.Context, id, name string) error {
	_, err := h.chats.Update(ctx, func(d *chat.Document) error {
		d.Rename(id, name)
		return nil
	})
	return err
}

// Submit runs one full turn: resolve or create the target conversation,
// append the user's fragments, call the provider unless the turn is empty,
// append the rendered reply and persist everything in a single store cycle.
// Provider failures degrade to an error message in the transcript; the turn
// still persists. Returns the id of the conversation that received the turn.
func (h *ChatHandler) Submit(ctx context.Context, chatID, prompt string, upload *Upload) (string, error) {
	att := h.normalizeUpload(ctx, upload)
	t, fragments := turn.Build(prompt, att)

	var targetID string
	_, err := h.chats.Update(ctx, func(d *chat.Document) error {
		conv := d.Get(chatID)
		if conv == nil {
			created, createErr := d.Create()
			if createErr != nil {
				return createErr
			}
			conv = created
			metrics.ConversationsCreatedTotal.Inc()
		}
		targetID = conv.ID

		// History for the provider is the transcript before this turn.
		history := make([]chat.Message, len(conv.Messages))
		copy(history, conv.Messages)

		for _, fragment := range fragments {
			conv.Append(chat.Message{Role: chat.RoleUser, HTML: fragment})
		}

		if t.Empty() {
			return nil
		}

		reply, genErr := h.provider.Generate(ctx, history, t)
		var botHTML string
		if genErr != nil {
			h.logger.Error().Err(genErr).Str("chat_id", conv.ID).Msg("generate reply")
			botHTML = `<p class="error">⚠️ ` + html.EscapeString(genErr.Error()) + `</p>`
		} else {
			botHTML = markdown.Render(reply)
		}
		conv.Append(chat.Message{Role: chat.RoleBot, HTML: botHTML})

		h.titler.MaybeRetitle(ctx, conv)
		return nil
	})
	if err != nil {
		return "", err
	}
	return targetID, nil
}

// normalizeUpload turns a received file into a transcript fragment plus
// provider part. Unreadable files degrade to a display-only notice so the
// turn still goes through.
func (h *ChatHandler) normalizeUpload(ctx context.Context, upload *Upload) *turn.Attachment {
	if upload == nil || upload.Filename == "" {
		return nil
	}

	att, err := attachment.Normalize(ctx, upload.Data, upload.ContentType, upload.Filename)
	if err != nil {
		h.logger.Warn().Err(err).Str("filename", upload.Filename).Msg("normalize upload")
		att = &turn.Attachment{
			Kind:        "unreadable",
			DisplayHTML: "⚠️ Could not read file: " + html.EscapeString(upload.Filename),
		}
	}
	metrics.AttachmentsTotal.WithLabelValues(att.Kind).Inc()
	return att
}
