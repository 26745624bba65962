package chathandler

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatterbot-server/internal/domain/chat"
	"chatterbot-server/internal/domain/turn"
)

type memStore struct {
	doc   *chat.Document
	saves int
}

func (s *memStore) Load() *chat.Document {
	if s.doc == nil {
		s.doc = chat.NewDocument()
	}
	return s.doc
}

func (s *memStore) Save(doc *chat.Document) error {
	s.doc = doc
	s.saves++
	return nil
}

type stubProvider struct {
	reply        string
	generateErr  error
	summary      string
	summarizeErr error

	generateCalls  int
	lastHistory    []chat.Message
	lastTurn       turn.Turn
	summarizeCalls int
}

func (p *stubProvider) Generate(_ context.Context, history []chat.Message, t turn.Turn) (string, error) {
	p.generateCalls++
	p.lastHistory = history
	p.lastTurn = t
	return p.reply, p.generateErr
}

func (p *stubProvider) Summarize(_ context.Context, _ string) (string, error) {
	p.summarizeCalls++
	return p.summary, p.summarizeErr
}

func newTestHandler(provider *stubProvider) (*ChatHandler, *memStore) {
	store := &memStore{}
	service := chat.NewService(store, zerolog.Nop())
	return NewChatHandler(service, provider, zerolog.Nop()), store
}

func TestSubmitTextTurn(t *testing.T) {
	provider := &stubProvider{reply: "Hi there!", summary: "A friendly greeting"}
	handler, store := newTestHandler(provider)

	targetID, err := handler.Submit(context.Background(), "", "hello <world>", nil)
	require.NoError(t, err)
	require.NotEmpty(t, targetID)

	conv := store.doc.Get(targetID)
	require.NotNil(t, conv)
	require.Len(t, conv.Messages, 2)

	assert.Equal(t, chat.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "hello &lt;world&gt;", conv.Messages[0].HTML)
	assert.Equal(t, chat.RoleBot, conv.Messages[1].Role)
	assert.Equal(t, "<p>Hi there!</p>\n", conv.Messages[1].HTML)

	assert.Equal(t, 1, provider.generateCalls)
	assert.Empty(t, provider.lastHistory)
	require.Len(t, provider.lastTurn.Parts, 1)
	assert.Equal(t, "hello <world>", provider.lastTurn.Parts[0].Text)

	// Default-named conversations get retitled after the first turn.
	assert.Equal(t, 1, provider.summarizeCalls)
	assert.Equal(t, "A friendly greeting", conv.Name)
	assert.GreaterOrEqual(t, store.saves, 1)
}

func TestSubmitUnsupportedFileOnlySkipsProvider(t *testing.T) {
	provider := &stubProvider{reply: "unused"}
	handler, store := newTestHandler(provider)

	upload := &Upload{Filename: "data.bin", ContentType: "application/octet-stream", Data: []byte{0x00}}
	targetID, err := handler.Submit(context.Background(), "", "", upload)
	require.NoError(t, err)

	conv := store.doc.Get(targetID)
	require.NotNil(t, conv)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, chat.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "Unsupported file: data.bin", conv.Messages[0].HTML)

	assert.Zero(t, provider.generateCalls)
	assert.GreaterOrEqual(t, store.saves, 1, "the notice still persists")
}

func TestSubmitProviderErrorBecomesBotMessage(t *testing.T) {
	provider := &stubProvider{generateErr: errors.New("quota exceeded")}
	handler, store := newTestHandler(provider)

	targetID, err := handler.Submit(context.Background(), "", "hello", nil)
	require.NoError(t, err, "provider failures do not fail the turn")

	conv := store.doc.Get(targetID)
	require.NotNil(t, conv)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, chat.RoleBot, conv.Messages[1].Role)
	assert.Equal(t, `<p class="error">⚠️ quota exceeded</p>`, conv.Messages[1].HTML)
	assert.GreaterOrEqual(t, store.saves, 1)
}

func TestSubmitPassesPriorTranscriptAsHistory(t *testing.T) {
	provider := &stubProvider{reply: "second reply", summary: "t"}
	handler, store := newTestHandler(provider)

	firstID, err := handler.Submit(context.Background(), "", "first", nil)
	require.NoError(t, err)

	_, err = handler.Submit(context.Background(), firstID, "second", nil)
	require.NoError(t, err)

	require.Len(t, provider.lastHistory, 2, "history excludes the in-flight turn")
	assert.Equal(t, "first", provider.lastHistory[0].HTML)
	require.Len(t, store.doc.Get(firstID).Messages, 4)
}

func TestSubmitUnknownChatIDCreatesConversation(t *testing.T) {
	provider := &stubProvider{reply: "ok", summary: "t"}
	handler, store := newTestHandler(provider)

	targetID, err := handler.Submit(context.Background(), "chat_missing", "hello", nil)
	require.NoError(t, err)

	assert.NotEqual(t, "chat_missing", targetID)
	assert.NotNil(t, store.doc.Get(targetID))
}

func TestSubmitImageUpload(t *testing.T) {
	provider := &stubProvider{reply: "nice picture", summary: "t"}
	handler, store := newTestHandler(provider)

	upload := &Upload{Filename: "cat.png", ContentType: "image/png", Data: []byte("png-bytes")}
	targetID, err := handler.Submit(context.Background(), "", "what is this?", upload)
	require.NoError(t, err)

	conv := store.doc.Get(targetID)
	require.Len(t, conv.Messages, 3, "prompt fragment, image fragment, reply")
	assert.Contains(t, conv.Messages[1].HTML, "data:image/png;base64,")
	require.Len(t, provider.lastTurn.Parts, 2)
	assert.Equal(t, "image/png", provider.lastTurn.Parts[1].Inline.MIMEType)
}

func TestTranscriptViewCreatesOnEmptyStore(t *testing.T) {
	handler, store := newTestHandler(&stubProvider{})

	doc, currentID, err := handler.TranscriptView(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, doc.Conversations, 1)
	assert.Equal(t, doc.Conversations[0].ID, currentID)
	assert.Equal(t, chat.DefaultName, doc.Conversations[0].Name)
	assert.GreaterOrEqual(t, store.saves, 1, "the created conversation persists")
}

func TestTranscriptViewFallsBackToLatest(t *testing.T) {
	handler, _ := newTestHandler(&stubProvider{})

	first, err := handler.NewChat(context.Background())
	require.NoError(t, err)
	second, err := handler.NewChat(context.Background())
	require.NoError(t, err)

	_, currentID, err := handler.TranscriptView(context.Background(), "chat_unknown")
	require.NoError(t, err)
	assert.Equal(t, second, currentID)

	_, currentID, err = handler.TranscriptView(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, first, currentID)
}

func TestRenameAndDelete(t *testing.T) {
	handler, store := newTestHandler(&stubProvider{})

	id, err := handler.NewChat(context.Background())
	require.NoError(t, err)

	require.NoError(t, handler.Rename(context.Background(), id, "  Project notes  "))
	assert.Equal(t, "Project notes", store.doc.Get(id).Name)

	require.NoError(t, handler.Delete(context.Background(), id))
	assert.Nil(t, store.doc.Get(id))

	require.NoError(t, handler.Delete(context.Background(), "chat_gone"), "unknown ids are a no-op")
}
