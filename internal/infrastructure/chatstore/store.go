package chatstore

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"chatterbot-server/internal/domain/chat"
)

// FileStore persists the full conversation document as a single JSON file. The
// document is bounded by one user's chat history, so whole-file rewrites are
// cheaper than incremental updates would be worth.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the persisted document. Missing, empty, or malformed files are
// treated as an empty store: a fresh empty document is written back
// immediately (self-healing) and returned. Load never fails.
func (s *FileStore) Load() *chat.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("read chat store")
		}
		return s.heal()
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.heal()
	}

	doc := chat.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("chat store corrupt, resetting")
		return s.heal()
	}
	if doc.Conversations == nil {
		doc.Conversations = []*chat.Conversation{}
	}
	return doc
}

// heal replaces unreadable persisted state with an empty valid document.
func (s *FileStore) heal() *chat.Document {
	doc := chat.NewDocument()
	if err := s.Save(doc); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("self-heal chat store")
	}
	return doc
}

// Save serializes the document and atomically replaces the persisted file.
// Four-space indent and unescaped HTML keep the on-disk format readable and
// compatible with the historical store artifact.
func (s *FileStore) Save(doc *chat.Document) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}
