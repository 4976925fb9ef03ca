package store

import (
	"context"
	"sync"
)

// MemoryBlobs is an in-process Blobs backend
type MemoryBlobs struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{data: make(map[string][]byte)}
}

func (m *MemoryBlobs) Load(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (m *MemoryBlobs) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBlobs) Modify(ctx context.Context, key string, fn func(data []byte, found bool) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, found := m.data[key]
	if found {
		current = append([]byte(nil), current...)
	}
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	if next != nil {
		m.data[key] = append([]byte(nil), next...)
	}
	return nil
}
