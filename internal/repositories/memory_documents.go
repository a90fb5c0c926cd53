package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type memoryCollection struct {
	order []string
	docs  map[string][]byte
}

type memoryDocumentStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

// NewMemoryDocumentStore stores documents as JSON in process memory. Reads
// see the same number types a JSONB round trip produces.
func NewMemoryDocumentStore() DocumentStore {
	return &memoryDocumentStore{collections: make(map[string]*memoryCollection)}
}

func (m *memoryDocumentStore) collection(name string) *memoryCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string][]byte)}
		m.collections[name] = c
	}

	return c
}

func (m *memoryDocumentStore) GetDocument(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[collection]
	if !ok {
		return nil, ErrDocumentNotFound
	}

	raw, ok := c.docs[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}

	return decodeDocument(raw)
}

func (m *memoryDocumentStore) SetDocument(_ context.Context, collection, id string, fields Document, opts ...SetOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection)

	next := fields
	if existing, ok := c.docs[id]; ok && hasMerge(opts) {
		merged, err := decodeDocument(existing)
		if err != nil {
			return err
		}

		for k, v := range fields {
			merged[k] = v
		}

		next = merged
	}

	return c.put(id, next)
}

func (m *memoryDocumentStore) UpdateFields(_ context.Context, collection, id string, fields Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return ErrDocumentNotFound
	}

	existing, ok := c.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}

	doc, err := decodeDocument(existing)
	if err != nil {
		return err
	}

	for k, v := range fields {
		doc[k] = v
	}

	return c.put(id, doc)
}

func (m *memoryDocumentStore) DeleteDocument(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return nil
	}

	if _, ok := c.docs[id]; !ok {
		return nil
	}

	delete(c.docs, id)

	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)

			break
		}
	}

	return nil
}

func (m *memoryDocumentStore) QueryWhere(_ context.Context, collection, field string, value any) ([]DocumentSnapshot, error) {
	want, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query value: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	all, err := m.list(collection)
	if err != nil {
		return nil, err
	}

	matches := []DocumentSnapshot{}

	for _, snap := range all {
		v, ok := snap.Fields[field]
		if !ok {
			continue
		}

		got, err := json.Marshal(v)
		if err != nil {
			continue
		}

		if bytes.Equal(got, want) {
			matches = append(matches, snap)
		}
	}

	return matches, nil
}

func (m *memoryDocumentStore) ListDocuments(_ context.Context, collection string) ([]DocumentSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.list(collection)
}

func (m *memoryDocumentStore) list(collection string) ([]DocumentSnapshot, error) {
	snapshots := []DocumentSnapshot{}

	c, ok := m.collections[collection]
	if !ok {
		return snapshots, nil
	}

	for _, id := range c.order {
		doc, err := decodeDocument(c.docs[id])
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, DocumentSnapshot{ID: id, Fields: doc})
	}

	return snapshots, nil
}

func (c *memoryCollection) put(id string, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document fields: %w", err)
	}

	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}

	c.docs[id] = raw

	return nil
}
