package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process. It hands out copies, so callers
// must Update to persist changes.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

func (s *MemoryStore) Create(ctx context.Context, data *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[data.ID]; exists {
		return ErrAlreadyExists
	}

	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now
	data.Version = 1

	s.sessions[data.ID] = data.clone()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.sessions[id]
	if !exists {
		return nil, nil
	}
	return data.clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, data *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.sessions[data.ID]
	if !exists {
		return ErrNotFound
	}

	if stored.Version != data.Version {
		return ErrVersionConflict
	}

	data.Version++
	data.UpdatedAt = time.Now()

	s.sessions[data.ID] = data.clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]*Session)
	return nil
}
