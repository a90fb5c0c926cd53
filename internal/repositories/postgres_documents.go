package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/frameart/storefront/internal/utils"
)

type postgresDocumentStore struct {
	DB *sql.DB
}

// NewPostgresDocumentStore keeps every collection in the documents table
// as JSONB, keyed by (collection, id).
func NewPostgresDocumentStore(db *sql.DB) DocumentStore {
	return &postgresDocumentStore{DB: db}
}

func (r *postgresDocumentStore) GetDocument(ctx context.Context, collection, id string) (Document, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT fields FROM documents WHERE collection = $1 AND id = $2`

	var raw []byte

	err := r.DB.QueryRowContext(dbCtx, query, collection, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}

		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}

	return decodeDocument(raw)
}

func (r *postgresDocumentStore) SetDocument(ctx context.Context, collection, id string, fields Document, opts ...SetOption) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal document fields: %w", err)
	}

	query := `
		INSERT INTO documents (collection, id, fields, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (collection, id) DO UPDATE SET fields = EXCLUDED.fields, updated_at = NOW()
	`
	if hasMerge(opts) {
		query = `
		INSERT INTO documents (collection, id, fields, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (collection, id) DO UPDATE SET fields = documents.fields || EXCLUDED.fields, updated_at = NOW()
	`
	}

	if _, err := r.DB.ExecContext(dbCtx, query, collection, id, fieldsJSON); err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
	}

	return nil
}

func (r *postgresDocumentStore) UpdateFields(ctx context.Context, collection, id string, fields Document) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal document fields: %w", err)
	}

	query := `
		UPDATE documents
		SET fields = fields || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, collection, id, fieldsJSON)
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

// DeleteDocument is idempotent: deleting a missing document succeeds.
func (r *postgresDocumentStore) DeleteDocument(ctx context.Context, collection, id string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	if _, err := r.DB.ExecContext(dbCtx, query, collection, id); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}

	return nil
}

func (r *postgresDocumentStore) QueryWhere(ctx context.Context, collection, field string, value any) ([]DocumentSnapshot, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	valueJSON, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query value: %w", err)
	}

	query := `
		SELECT id, fields
		FROM documents
		WHERE collection = $1 AND fields -> $2::text = $3::jsonb
		ORDER BY created_at
	`

	rows, err := r.DB.QueryContext(dbCtx, query, collection, field, valueJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s where %s: %w", collection, field, err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func (r *postgresDocumentStore) ListDocuments(ctx context.Context, collection string) ([]DocumentSnapshot, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, fields FROM documents WHERE collection = $1 ORDER BY created_at`

	rows, err := r.DB.QueryContext(dbCtx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func scanSnapshots(rows *sql.Rows) ([]DocumentSnapshot, error) {
	snapshots := []DocumentSnapshot{}

	for rows.Next() {
		var (
			id  string
			raw []byte
		)

		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}

		doc, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, DocumentSnapshot{ID: id, Fields: doc})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return snapshots, nil
}

func decodeDocument(raw []byte) (Document, error) {
	doc := Document{}

	if len(raw) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document fields: %w", err)
	}

	return doc, nil
}
