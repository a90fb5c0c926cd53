package repository

import (
	"context"
	"errors"
)

var ErrDocumentNotFound = errors.New("document not found")

// Document is the field map of one stored document. Values are plain JSON
// shapes: strings, float64 or int numbers, bools, []any and map[string]any.
type Document map[string]any

type DocumentSnapshot struct {
	ID     string
	Fields Document
}

type SetOption int

// MergeAll merges top-level fields into an existing document instead of
// replacing it. A missing document is created either way.
const MergeAll SetOption = iota + 1

// DocumentStore is a single-document, non-transactional store.
type DocumentStore interface {
	GetDocument(ctx context.Context, collection, id string) (Document, error)
	SetDocument(ctx context.Context, collection, id string, fields Document, opts ...SetOption) error
	// UpdateFields replaces the given top-level fields and returns
	// ErrDocumentNotFound if the document does not exist.
	UpdateFields(ctx context.Context, collection, id string, fields Document) error
	DeleteDocument(ctx context.Context, collection, id string) error
	QueryWhere(ctx context.Context, collection, field string, value any) ([]DocumentSnapshot, error)
	ListDocuments(ctx context.Context, collection string) ([]DocumentSnapshot, error)
}

func hasMerge(opts []SetOption) bool {
	for _, o := range opts {
		if o == MergeAll {
			return true
		}
	}

	return false
}
