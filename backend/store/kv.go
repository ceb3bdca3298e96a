package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when a referenced course, content item, quiz or
// notification does not exist in the store.
var ErrNotFound = errors.New("record not found")

// KV is the string-keyed persistent map underneath every repository. It
// mirrors the browser localStorage contract: synchronous, no expiry, no
// multi-key transactions. A multi-key update is several independent writes
// with no rollback, and concurrent writers race with last-write-wins at
// whole-value granularity.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
	Keys() []string
}

// MemoryKV is the in-process backend used by tests and as a fallback when no
// durable backend is configured.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryKV) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MemoryKV) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

func (m *MemoryKV) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
