package storage

import "sync"

// MemoryStore keeps the blob in memory. It forgets everything on exit.
type MemoryStore struct {
	mu    sync.Mutex
	blob  string
	saved bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blob, m.saved, nil
}

func (m *MemoryStore) Save(blob string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob, m.saved = blob, true
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob, m.saved = "", false
	return nil
}
