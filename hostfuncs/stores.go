package hostfuncs

import "sync"

// VarStore holds run-scoped variables for the vars namespace.
type VarStore interface {
	Get(name string) (string, bool)
	Set(name, value string)
	Delete(name string)
}

// CacheStore holds values for the cache namespace. Unlike variables, cache
// entries may outlive a run; the interface leaves eviction to the
// implementation.
type CacheStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MemoryStore is a mutex-guarded map serving both store interfaces. The
// default backing for vars and cache in embedded hosts and tests.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

func (s *MemoryStore) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[name]
	return v, ok
}

func (s *MemoryStore) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[name] = value
}

func (s *MemoryStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, name)
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
