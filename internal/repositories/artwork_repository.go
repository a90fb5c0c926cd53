package repository

import (
	"context"
	"time"

	"github.com/frameart/storefront/internal/models"
	"github.com/frameart/storefront/internal/snapshot"
	"github.com/google/uuid"
)

type ArtworkRepository interface {
	Create(ctx context.Context, artwork *models.ArtworkRecord) error
	Get(ctx context.Context, id string) (*models.ArtworkRecord, error)
	Update(ctx context.Context, id string, fields Document) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.ArtworkRecord, error)
	ListPublished(ctx context.Context) ([]*models.ArtworkRecord, error)
}

type artworkRepository struct {
	docs DocumentStore
}

func NewArtworkRepo(docs DocumentStore) ArtworkRepository {
	return &artworkRepository{docs: docs}
}

// Create assigns an id and timestamps when they are missing.
func (r *artworkRepository) Create(ctx context.Context, artwork *models.ArtworkRecord) error {
	if artwork.ID == "" {
		artwork.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	if artwork.CreatedAt.IsZero() {
		artwork.CreatedAt = now
	}

	artwork.UpdatedAt = now

	return r.docs.SetDocument(ctx, ArtworksCollection, artwork.ID, artwork.ToFields())
}

func (r *artworkRepository) Get(ctx context.Context, id string) (*models.ArtworkRecord, error) {
	doc, err := r.docs.GetDocument(ctx, ArtworksCollection, id)
	if err != nil {
		return nil, err
	}

	return ArtworkFromDocument(id, doc), nil
}

func (r *artworkRepository) Update(ctx context.Context, id string, fields Document) error {
	return r.docs.UpdateFields(ctx, ArtworksCollection, id, fields)
}

func (r *artworkRepository) Delete(ctx context.Context, id string) error {
	return r.docs.DeleteDocument(ctx, ArtworksCollection, id)
}

func (r *artworkRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.ArtworkRecord, error) {
	snapshots, err := r.docs.QueryWhere(ctx, ArtworksCollection, "artistId", ownerID)
	if err != nil {
		return nil, err
	}

	return artworksFromSnapshots(snapshots), nil
}

func (r *artworkRepository) ListPublished(ctx context.Context) ([]*models.ArtworkRecord, error) {
	snapshots, err := r.docs.QueryWhere(ctx, ArtworksCollection, "isPublished", true)
	if err != nil {
		return nil, err
	}

	return artworksFromSnapshots(snapshots), nil
}

func artworksFromSnapshots(snapshots []DocumentSnapshot) []*models.ArtworkRecord {
	artworks := make([]*models.ArtworkRecord, 0, len(snapshots))
	for _, snap := range snapshots {
		artworks = append(artworks, ArtworkFromDocument(snap.ID, snap.Fields))
	}

	return artworks
}

// ArtworkFromDocument reads both the draft fields and the public gallery
// fields merged in at publish time.
func ArtworkFromDocument(id string, doc Document) *models.ArtworkRecord {
	artwork := &models.ArtworkRecord{
		ID:             id,
		OwnerID:        snapshot.Text(doc, "artistId"),
		Title:          snapshot.Text(doc, "title", "alt_description"),
		Description:    snapshot.Text(doc, "description"),
		Price:          snapshot.CoerceFloat(doc["price"]),
		Size:           snapshot.Dimensions(snapshot.Raw(doc)),
		Tags:           snapshot.NormalizeTags(doc["tags"]),
		ImageURL:       snapshot.Text(doc, "imageUrl", "urls.regular"),
		ThumbURL:       snapshot.Text(doc, "thumbUrl", "urls.small"),
		ArtistName:     snapshot.Text(doc, "artistName", "user.name"),
		ArtistLocation: snapshot.Text(doc, "artistLocation", "user.location"),
		ArtistPhoto:    snapshot.Text(doc, "artistPhoto", "user.profile_image.medium"),
		IsPublished:    snapshot.CoerceBool(doc["isPublished"]),
		CreatedAt:      snapshot.CoerceTime(doc["createdAt"]),
		UpdatedAt:      snapshot.CoerceTime(doc["updatedAt"]),
	}

	if published := snapshot.CoerceTime(doc["publishedAt"]); !published.IsZero() {
		artwork.PublishedAt = &published
	}

	return artwork
}
