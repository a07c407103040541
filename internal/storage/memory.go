package storage

import "sync"

// MemoryBackend keeps blobs in process memory. Nothing survives Close.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailSet, when non-nil, is returned by every Set call.
	FailSet error
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Get implements Backend.
func (m *MemoryBackend) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements Backend.
func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Close implements Backend.
func (m *MemoryBackend) Close() error { return nil }
