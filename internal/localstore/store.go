// Package localstore holds the device-scoped key/value store that keeps a
// guest cart alive between requests. One SessionStore is bound to one
// browser session.
package localstore

import (
	"context"
	"fmt"
	"sync"
)

type SessionStore interface {
	// Get reports found=false for a missing key; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Factory returns the store for a session id.
type Factory func(sessionID string) SessionStore

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() SessionStore {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]

	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value

	return nil
}

func (m *memoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

// MemoryFactory keeps one memory store per session id for the life of the
// process, so an evicted session that comes back finds its guest cart.
func MemoryFactory() Factory {
	var mu sync.Mutex

	stores := make(map[string]SessionStore)

	return func(sessionID string) SessionStore {
		mu.Lock()
		defer mu.Unlock()

		s, ok := stores[sessionID]
		if !ok {
			s = NewMemoryStore()
			stores[sessionID] = s
		}

		return s
	}
}

// Move copies keys from one store to another and then removes them from the
// source. Missing keys are skipped. A failed write leaves the source intact.
func Move(ctx context.Context, from, to SessionStore, keys ...string) error {
	for _, key := range keys {
		v, found, err := from.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", key, err)
		}

		if !found {
			continue
		}

		if err := to.Set(ctx, key, v); err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}

		if err := from.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %q: %w", key, err)
		}
	}

	return nil
}
