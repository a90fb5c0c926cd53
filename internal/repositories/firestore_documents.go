package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/frameart/storefront/internal/config"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreDocumentStore struct {
	Client *firestore.Client
}

func NewFirestoreClient(ctx context.Context, cfg *config.Store) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.FirestoreProject, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return client, nil
}

func NewFirestoreDocumentStore(client *firestore.Client) DocumentStore {
	return &firestoreDocumentStore{Client: client}
}

func (r *firestoreDocumentStore) GetDocument(ctx context.Context, collection, id string) (Document, error) {
	snap, err := r.Client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrDocumentNotFound
		}

		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}

	return Document(snap.Data()), nil
}

func (r *firestoreDocumentStore) SetDocument(ctx context.Context, collection, id string, fields Document, opts ...SetOption) error {
	var setOpts []firestore.SetOption
	if hasMerge(opts) {
		setOpts = append(setOpts, firestore.MergeAll)
	}

	if _, err := r.Client.Collection(collection).Doc(id).Set(ctx, map[string]any(fields), setOpts...); err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
	}

	return nil
}

func (r *firestoreDocumentStore) UpdateFields(ctx context.Context, collection, id string, fields Document) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}

	if _, err := r.Client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrDocumentNotFound
		}

		return fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
	}

	return nil
}

func (r *firestoreDocumentStore) DeleteDocument(ctx context.Context, collection, id string) error {
	if _, err := r.Client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}

	return nil
}

func (r *firestoreDocumentStore) QueryWhere(ctx context.Context, collection, field string, value any) ([]DocumentSnapshot, error) {
	snaps, err := r.Client.Collection(collection).Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s where %s: %w", collection, field, err)
	}

	return toSnapshots(snaps), nil
}

func (r *firestoreDocumentStore) ListDocuments(ctx context.Context, collection string) ([]DocumentSnapshot, error) {
	snaps, err := r.Client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	return toSnapshots(snaps), nil
}

func toSnapshots(snaps []*firestore.DocumentSnapshot) []DocumentSnapshot {
	out := make([]DocumentSnapshot, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, DocumentSnapshot{ID: s.Ref.ID, Fields: Document(s.Data())})
	}

	return out
}

// IsNotFound reports whether err means the document is absent in any backend.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDocumentNotFound)
}
