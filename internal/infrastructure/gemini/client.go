// Package gemini wraps the google.golang.org/genai SDK as the generation and
// summarization collaborator.
package gemini

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	genai "google.golang.org/genai"

	"chatterbot-server/internal/config"
	"chatterbot-server/internal/domain/chat"
	"chatterbot-server/internal/domain/turn"
	"chatterbot-server/internal/infrastructure/metrics"
)

const systemInstruction = `You are ChatterBot — a friendly, modern, conversational AI buddy.

Your personality:
- Warm, supportive, humorous when appropriate.
- Speak like a close, helpful friend.
- Keep responses natural, simple, and human-like.
- Be positive, engaging, and easy to talk to.

Your main goals:
1. Answer the user's question clearly.
2. Give helpful tips or suggestions related to their topic.
3. ALWAYS ask follow-up questions at the end to continue the conversation.

Important behavior:
- DO NOT give very long essays.
- Use short paragraphs and quick clarity.
- Maintain a smooth conversational flow.
- Adapt tone to the mood of the user (happy, confused, learning, etc.)
- If user uploads a file (PDF, image, docx, txt) explain the file clearly and ask related follow-up questions.`

// Client calls the Gemini API. Conversation context is not held in a
// provider-side session object: the caller replays the persisted transcript
// on every generation, so context survives process restarts.
type Client struct {
	client     *genai.Client
	model      string
	titleModel string
	timeout    time.Duration
	logger     zerolog.Logger
}

func NewClient(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}

	return &Client{
		client:     client,
		model:      cfg.GeminiModel,
		titleModel: cfg.GeminiTitleModel,
		timeout:    cfg.ProviderTimeout,
		logger:     logger,
	}, nil
}

func generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.8),
		TopP:              genai.Ptr[float32](0.95),
		TopK:              genai.Ptr[float32](40),
		MaxOutputTokens:   8192,
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
}

func roleToGeminiRole(role chat.Role) genai.Role {
	if role == chat.RoleBot {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// makeContents replays the stored transcript and appends the current turn as
// the final user content.
func makeContents(history []chat.Message, t turn.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, genai.NewContentFromText(msg.HTML, roleToGeminiRole(msg.Role)))
	}

	parts := make([]*genai.Part, 0, len(t.Parts))
	for _, part := range t.Parts {
		if part.Inline != nil {
			parts = append(parts, genai.NewPartFromBytes(part.Inline.Data, part.Inline.MIMEType))
		} else {
			parts = append(parts, genai.NewPartFromText(part.Text))
		}
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	return contents
}

// Generate sends one turn, with the prior transcript as context, and returns
// the reply text. A configured timeout bounds the call; expiry surfaces as an
// ordinary provider failure.
func (c *Client) Generate(ctx context.Context, history []chat.Message, t turn.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, makeContents(history, t), generationConfig())
	metrics.RecordProviderCall("generate", err)
	if err != nil {
		return "", errors.Wrap(err, "gemini generate")
	}

	if usage := resp.UsageMetadata; usage != nil {
		metrics.RecordTokenUsage(c.model, int64(usage.PromptTokenCount), int64(usage.CandidatesTokenCount))
	}

	c.logger.Debug().
		Str("model", c.model).
		Int("history", len(history)).
		Dur("latency", time.Since(start)).
		Msg("generation complete")

	return resp.Text(), nil
}

// Summarize runs a one-shot prompt against the title model, with no system
// instruction or tools.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.titleModel, genai.Text(prompt), nil)
	metrics.RecordProviderCall("summarize", err)
	if err != nil {
		return "", errors.Wrap(err, "gemini summarize")
	}

	return resp.Text(), nil
}
