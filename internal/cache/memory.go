package cache

import "sync"

// MemoryStore is a concurrency-safe in-memory Store. It backs tests and
// cache-less deployments where nothing should touch the disk.
type MemoryStore struct {
	mu sync.RWMutex

	// key: storage key, value: encoded record
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// Get returns a copy of the value for key, if present.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

// Set stores a copy of value under key, replacing any previous value.
func (s *MemoryStore) Set(key string, value []byte) error {
	in := make([]byte, len(value))
	copy(in, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = in
	return nil
}
