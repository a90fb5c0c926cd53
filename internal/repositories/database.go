package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/XSAM/otelsql"
	"github.com/frameart/storefront/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB
}

// NewPostgres opens the traced connection pool and checks it is reachable.
func NewPostgres(cfg *config.Database) (*Repository, error) {
	db, err := otelsql.Open("postgres", cfg.GetDSN(), otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{DB: db}, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}

// Stores is the set of document-backed repositories one backend provides.
type Stores struct {
	Documents      DocumentStore
	Profiles       ProfileRepository
	Artworks       ArtworkRepository
	FavoritesIndex ReferenceIndex
	CartIndex      ReferenceIndex

	// Firestore is set when the firestore backend is in use.
	Firestore *firestore.Client
}

// NewStores wires the repositories for the configured backend. db is only
// used by the postgres backend and may be nil otherwise.
func NewStores(ctx context.Context, cfg *config.Store, db *sql.DB) (*Stores, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.StoreBackendPostgres:
		if db == nil {
			return nil, noop, fmt.Errorf("postgres store backend needs a database connection")
		}

		docs := NewPostgresDocumentStore(db)

		return &Stores{
			Documents:      docs,
			Profiles:       NewProfileRepo(docs),
			Artworks:       NewArtworkRepo(docs),
			FavoritesIndex: NewPostgresIndex(db, UsersCollection, FavoritesField),
			CartIndex:      NewPostgresIndex(db, UsersCollection, CartField),
		}, noop, nil
	case config.StoreBackendFirestore:
		client, err := NewFirestoreClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}

		stores := newScanStores(NewFirestoreDocumentStore(client))
		stores.Firestore = client

		return stores, client.Close, nil
	case config.StoreBackendMemory:
		return newScanStores(NewMemoryDocumentStore()), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func newScanStores(docs DocumentStore) *Stores {
	return &Stores{
		Documents:      docs,
		Profiles:       NewProfileRepo(docs),
		Artworks:       NewArtworkRepo(docs),
		FavoritesIndex: NewScanIndex(docs, UsersCollection, FavoritesField),
		CartIndex:      NewScanIndex(docs, UsersCollection, CartField),
	}
}
