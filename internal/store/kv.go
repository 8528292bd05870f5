// Package store persists the complaint collection as one JSON document in a
// named slot of a key-value medium.
package store

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrSlotNotFound is returned by a KV when the slot has never been written.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrStoreFailure wraps any error raised by the underlying medium.
	ErrStoreFailure = errors.New("store failure")
)

// KV is the whole-value get/set contract every medium implements.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// MemoryKV keeps slots in process memory.
type MemoryKV struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{slots: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.slots[key] = stored
	return nil
}
