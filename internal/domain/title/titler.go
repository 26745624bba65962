// Package title derives short display names for conversations from their
// first user message.
package title

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"chatterbot-server/internal/domain/chat"
	"chatterbot-server/internal/utils/stringutils"
)

const (
	maxTitleRunes = 40

	titlePrompt = "Generate a short, descriptive 3-5 word title based ONLY on the user's message. " +
		"Do NOT include phrases like 'here are a few options' or follow-up content.\n\nUser message: "
)

// Summarizer is the one-shot title-generation collaborator.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Titler renames conversations that still carry a placeholder name once their
// first turn has completed.
type Titler struct {
	summarizer Summarizer
	logger     zerolog.Logger
}

func NewTitler(summarizer Summarizer, logger zerolog.Logger) *Titler {
	return &Titler{summarizer: summarizer, logger: logger}
}

// MaybeRetitle re-evaluates the trigger on every turn: a placeholder name
// ("new chat" or anything starting with "chat", case-insensitive) plus at
// least two messages. When it fires, the conversation is renamed from its
// first user fragment; the trigger then stays false, so repeated calls are
// naturally no-ops. Returns whether a rename happened.
func (t *Titler) MaybeRetitle(ctx context.Context, conv *chat.Conversation) bool {
	current := strings.ToLower(strings.TrimSpace(conv.Name))
	if current != "new chat" && !strings.HasPrefix(current, "chat") {
		return false
	}
	if len(conv.Messages) < 2 {
		return false
	}

	conv.Name = t.generate(ctx, conv.Messages[0].HTML)
	return true
}

// generate asks the collaborator for a title, falling back to the default
// name when the call fails or produces nothing usable.
func (t *Titler) generate(ctx context.Context, firstUserFragment string) string {
	raw, err := t.summarizer.Summarize(ctx, titlePrompt+firstUserFragment)
	if err != nil {
		t.logger.Warn().Err(err).Msg("generate conversation title")
		return chat.DefaultName
	}

	name := stringutils.SanitizeTitleContent(raw)
	if name == "" {
		return chat.DefaultName
	}
	return stringutils.TruncateRunes(name, maxTitleRunes)
}
