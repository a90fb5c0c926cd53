package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/frameart/storefront/internal/utils"
)

const (
	UsersCollection       = "users"
	ArtworksCollection    = "artworks"
	CredentialsCollection = "credentials"

	FavoritesField = "favorites"
	CartField      = "cart"
)

// ReferenceIndex finds the users whose list field holds an entry for an artwork.
type ReferenceIndex interface {
	FindReferencing(ctx context.Context, artworkID string) ([]string, error)
}

type scanIndex struct {
	docs       DocumentStore
	collection string
	field      string
}

// NewScanIndex reads every document in the collection. It works on any
// backend and is what the firestore deployment uses.
func NewScanIndex(docs DocumentStore, collection, field string) ReferenceIndex {
	return &scanIndex{docs: docs, collection: collection, field: field}
}

func (s *scanIndex) FindReferencing(ctx context.Context, artworkID string) ([]string, error) {
	snapshots, err := s.docs.ListDocuments(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for %s references: %w", s.collection, s.field, err)
	}

	ids := []string{}

	for _, snap := range snapshots {
		if listReferences(snap.Fields[s.field], artworkID) {
			ids = append(ids, snap.ID)
		}
	}

	return ids, nil
}

func listReferences(v any, artworkID string) bool {
	switch items := v.(type) {
	case []any:
		for _, item := range items {
			if entry, ok := item.(map[string]any); ok && entry["id"] == artworkID {
				return true
			}
		}
	case []map[string]any:
		for _, entry := range items {
			if entry["id"] == artworkID {
				return true
			}
		}
	}

	return false
}

type postgresIndex struct {
	DB         *sql.DB
	collection string
	field      string
}

// NewPostgresIndex answers with a JSONB containment query served by the GIN
// index on the list field.
func NewPostgresIndex(db *sql.DB, collection, field string) ReferenceIndex {
	return &postgresIndex{DB: db, collection: collection, field: field}
}

func (p *postgresIndex) FindReferencing(ctx context.Context, artworkID string) ([]string, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	needle, err := json.Marshal([]map[string]string{{"id": artworkID}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal containment filter: %w", err)
	}

	query := `SELECT id FROM documents WHERE collection = $1 AND fields -> $2::text @> $3::jsonb ORDER BY created_at`

	rows, err := p.DB.QueryContext(dbCtx, query, p.collection, p.field, needle)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s references: %w", p.field, err)
	}
	defer rows.Close()

	ids := []string{}

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan reference row: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reference rows: %w", err)
	}

	return ids, nil
}
