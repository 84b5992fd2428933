package repository

import (
	"context"
	"sync"
)

// LocalStore is the device-scoped string key/value store. Set replaces the
// whole value under a key.
type LocalStore interface {
	Get(ctx context.Context, key string) (value string, exists bool, err error)
	Set(ctx context.Context, key string, value string) (err error)
}

// MemoryLocalStore keeps values in process memory. Used in tests and when
// no durable local driver is configured.
type MemoryLocalStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryLocalStore() *MemoryLocalStore {
	return &MemoryLocalStore{
		data: make(map[string]string),
	}
}

func (m *MemoryLocalStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryLocalStore) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
