package siesta

import (
	"sync"
)

// EntityStore is a simple in-memory store holding the latest known entity
// per logical resource. It implements the cache collaborator a request
// consults on a 304 Not Modified.
type EntityStore[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entity[T]
}

// NewEntityStore creates an empty store.
func NewEntityStore[T any]() *EntityStore[T] {
	return &EntityStore[T]{
		entries: make(map[string]Entity[T]),
	}
}

// Latest returns the stored entity for key, if any.
func (s *EntityStore[T]) Latest(key string) (Entity[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entries[key]
	return entity, ok
}

// Store replaces the entity for key.
func (s *EntityStore[T]) Store(key string, entity Entity[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entity
}

// Invalidate removes the entity for key.
func (s *EntityStore[T]) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// Clear removes all entities.
func (s *EntityStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]Entity[T])
}

// Provider returns the snapshot-read function for key, suitable to pass to
// NewRequest.
func (s *EntityStore[T]) Provider(key string) CachedEntityFunc[T] {
	return func() (Entity[T], bool) {
		return s.Latest(key)
	}
}
