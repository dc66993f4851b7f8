// Package state owns the in-memory session and mirrors it to a backend.
package state

import (
	"encoding/json"
	"sync"
)

// Backend is the persistence port: string keys, JSON-encodable values.
// The SQLite state store implements it for the daemon; MemoryBackend
// serves tests and ephemeral runs.
type Backend interface {
	Save(key string, v any) error
	Load(key string, dest any) (bool, error)
	Delete(key string) error
}

// MemoryBackend keeps state in a map. Values are stored as their JSON
// encoding so Load/Save round-trip exactly like the durable backend.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (b *MemoryBackend) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = data
	return nil
}

func (b *MemoryBackend) Load(key string, dest any) (bool, error) {
	b.mu.Lock()
	data, ok := b.data[key]
	b.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (b *MemoryBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

// Keys returns the stored keys, for tests.
func (b *MemoryBackend) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	return keys
}
