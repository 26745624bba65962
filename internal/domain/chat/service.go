package chat

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"chatterbot-server/internal/utils/platformerrors"
)

// Store abstracts the persisted conversation document. Load must self-heal on
// missing or corrupt state and never fail; Save rewrites the whole document.
type Store interface {
	Load() *Document
	Save(doc *Document) error
}

// Service serializes every load-mutate-save cycle behind a single mutex. The
// store is single-user and file-backed, so one global lock is the documented
// concurrency strategy; the later-save-wins race of the original design
// cannot occur.
type Service struct {
	mu     sync.Mutex
	store  Store
	logger zerolog.Logger
}

func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Snapshot loads the current document without mutating it.
func (s *Service) Snapshot() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load()
}

// Update runs fn against a freshly loaded document and persists the result.
// The lock is held for the whole cycle, including any provider call fn makes:
// correctness over throughput for a single-user deployment.
func (s *Service) Update(ctx context.Context, fn func(doc *Document) error) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.store.Load()
	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := s.store.Save(doc); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerStore, platformerrors.ErrorTypeStorage,
			"persist conversation document", err)
	}
	return doc, nil
}
