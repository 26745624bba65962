package chat

import (
	"strings"
	"time"

	"chatterbot-server/internal/utils/idgen"
)

// DefaultName is the title every conversation starts with until the first
// completed turn triggers the AI titler.
const DefaultName = "New Chat"

// Role identifies who produced a transcript message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one immutable transcript entry. HTML is the pre-rendered display
// fragment, not raw provider text; the field name matches the persisted
// document format.
type Message struct {
	Role Role   `json:"role"`
	HTML string `json:"html"`
}

// Conversation is a named, ordered sequence of messages identified by an
// opaque id. Messages are append-only; the sequence is the transcript.
type Conversation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// Append adds a fully-formed message to the end of the transcript.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// Document is the complete persisted store: all conversations in insertion
// order. It is rewritten wholesale on every save.
type Document struct {
	Conversations []*Conversation `json:"conversations"`
}

// NewDocument returns an empty, valid store document.
func NewDocument() *Document {
	return &Document{Conversations: []*Conversation{}}
}

// Get returns the conversation with the given id, or nil.
func (d *Document) Get(id string) *Conversation {
	for _, conv := range d.Conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

// Latest returns the most recently inserted conversation, or nil when the
// document is empty. Insertion order is explicit rather than map iteration
// order so the default selection is deterministic.
func (d *Document) Latest() *Conversation {
	if len(d.Conversations) == 0 {
		return nil
	}
	return d.Conversations[len(d.Conversations)-1]
}

// Create inserts a fresh conversation named "New Chat" with an empty
// transcript and returns it. Ids are collision-checked against the document.
func (d *Document) Create() (*Conversation, error) {
	var id string
	for {
		generated, err := idgen.GenerateSecureID("chat", 8)
		if err != nil {
			return nil, err
		}
		if d.Get(generated) == nil {
			id = generated
			break
		}
	}

	conv := &Conversation{
		ID:        id,
		Name:      DefaultName,
		Messages:  []Message{},
		CreatedAt: time.Now().UTC(),
	}
	d.Conversations = append(d.Conversations, conv)
	return conv, nil
}

// Rename sets the conversation's name to the trimmed string. Whitespace-only
// input yields an empty name. Unknown ids are a no-op.
func (d *Document) Rename(id, newName string) {
	if conv := d.Get(id); conv != nil {
		conv.Name = strings.TrimSpace(newName)
	}
}

// Delete removes the conversation and its messages. Unknown ids are a no-op.
func (d *Document) Delete(id string) {
	for i, conv := range d.Conversations {
		if conv.ID == id {
			d.Conversations = append(d.Conversations[:i], d.Conversations[i+1:]...)
			return
		}
	}
}
