// internal/session/memory.go
package session

import (
	"context"
	"sync"
	"time"

	"applicant-forms/internal/application/form"
	apperrors "applicant-forms/internal/common/errors"
)

type memoryEntry struct {
	state   form.State
	expires time.Time
}

// MemoryStore keeps sessions in process memory. A zero ttl never expires.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Get(_ context.Context, id string) (form.State, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || s.expired(e) {
		return form.State{}, apperrors.NewSessionNotFoundError(id)
	}
	return e.state.Clone(), nil
}

// Put stores a copy of state and restarts its ttl. Expired entries are swept here.
func (s *MemoryStore) Put(_ context.Context, id string, state form.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, k)
		}
	}

	e := memoryEntry{state: state.Clone()}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.entries[id] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !s.now().Before(e.expires)
}
