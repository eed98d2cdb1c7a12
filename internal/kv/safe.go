package kv

import (
	"context"
	"maps"
	"sync"

	"github.com/rs/zerolog"
)

// SafeStore adapts a Backend to Store. Whenever the backend fails, the value
// is kept in an in-process overlay instead, so the session keeps working even
// though nothing reached disk. Callers are never told which path was taken.
type SafeStore struct {
	backend Backend
	log     zerolog.Logger

	mu      sync.Mutex
	pending map[string]string
	removed map[string]struct{}
}

var _ Store = (*SafeStore)(nil)

func NewSafeStore(backend Backend, log zerolog.Logger) *SafeStore {
	return &SafeStore{
		backend: backend,
		log:     log.With().Str("component", "kv").Logger(),
		pending: make(map[string]string),
		removed: make(map[string]struct{}),
	}
}

// NewMemoryStore is a Store with nothing behind it.
func NewMemoryStore() *SafeStore {
	return NewSafeStore(NewMemoryBackend(), zerolog.Nop())
}

func (s *SafeStore) Get(ctx context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.pending[key]; ok {
		return v, v != ""
	}
	if _, ok := s.removed[key]; ok {
		return "", false
	}

	v, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("read failed, using memory")
		return "", false
	}
	// Empty values read as absent.
	return v, ok && v != ""
}

func (s *SafeStore) Set(ctx context.Context, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.removed, key)
	if err := s.backend.Set(ctx, key, value); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("write failed, keeping value in memory")
		s.pending[key] = value
		return
	}
	delete(s.pending, key)
}

func (s *SafeStore) Remove(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, key)
	if err := s.backend.Remove(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("remove failed, hiding key in memory")
		s.removed[key] = struct{}{}
		return
	}
	delete(s.removed, key)
}

func (s *SafeStore) GetAll(ctx context.Context) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.backend.All(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("listing failed, using memory")
		all = make(map[string]string)
	}
	if all == nil {
		all = make(map[string]string)
	}
	for k := range s.removed {
		delete(all, k)
	}
	maps.Copy(all, s.pending)
	return all
}

func (s *SafeStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.pending)
	clear(s.removed)
	if err := s.backend.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clear failed, masking stored keys")
		all, listErr := s.backend.All(ctx)
		if listErr != nil {
			return
		}
		for k := range all {
			s.removed[k] = struct{}{}
		}
	}
}

func (s *SafeStore) IsPersistent() bool {
	return s.backend.Persistent()
}

func (s *SafeStore) Close() error {
	return s.backend.Close()
}
