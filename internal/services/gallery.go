package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/frameart/storefront/internal/cache"
	"github.com/frameart/storefront/internal/catalog"
	"github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/metrics"
	"github.com/frameart/storefront/internal/models"
	repository "github.com/frameart/storefront/internal/repositories"
	"github.com/frameart/storefront/internal/snapshot"
)

const DefaultGalleryQuery = "contemporary modern fine art painting exhibition gallery -photo -artist -camera -supplies -brushes -pencil -crayons"

type GalleryService interface {
	List(ctx context.Context, query string, page int) ([]models.GalleryItem, error)
	Get(ctx context.Context, id string) (*models.GalleryItem, error)
}

type galleryService struct {
	artworks repository.ArtworkRepository
	source   catalog.Source
	cache    cache.Cache
	ttl      time.Duration
}

func NewGalleryService(artworks repository.ArtworkRepository, source catalog.Source, c cache.Cache, ttl time.Duration) GalleryService {
	return &galleryService{
		artworks: artworks,
		source:   source,
		cache:    c,
		ttl:      ttl,
	}
}

// List puts published artist works ahead of catalog items. Artist works are
// only listed on the first page. A failing catalog degrades to artist works
// alone unless there are none.
func (s *galleryService) List(ctx context.Context, query string, page int) ([]models.GalleryItem, error) {
	log := logger.FromContext(ctx)

	if page < 1 {
		page = 1
	}

	query = strings.TrimSpace(query)
	if query == "" {
		query = DefaultGalleryQuery
	}

	items := []models.GalleryItem{}

	if page == 1 {
		published, err := s.artworks.ListPublished(ctx)
		if err != nil {
			return nil, errors.DatabaseError("Failed to list published artworks").WithError(err)
		}

		for _, artwork := range published {
			items = append(items, galleryItemFromArtwork(artwork))
		}
	}

	key := cache.Key(cache.CatalogKeyPrefix, "search:"+query+":"+strconv.Itoa(page))

	results, err := cache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]models.CatalogArtwork, error) {
		return s.source.Search(ctx, query, page)
	})

	metrics.CatalogRequests.WithLabelValues("search", metrics.Outcome(err)).Inc()

	if err != nil {
		if len(items) == 0 {
			return nil, errors.ThirdPartyError("Failed to fetch artworks").WithError(err)
		}

		log.Warn("Catalog unavailable, listing artist works only", slog.Any("error", err))

		return items, nil
	}

	for _, artwork := range results {
		items = append(items, galleryItemFromCatalog(artwork))
	}

	return items, nil
}

func (s *galleryService) Get(ctx context.Context, id string) (*models.GalleryItem, error) {
	if id == "" {
		return nil, errors.ArtworkNotFoundError("Artwork not found")
	}

	artwork, err := s.artworks.Get(ctx, id)
	switch {
	case err == nil && artwork.IsPublished:
		item := galleryItemFromArtwork(artwork)

		return &item, nil
	case err != nil && !stderrors.Is(err, repository.ErrDocumentNotFound):
		return nil, errors.DatabaseError("Failed to load artwork").WithError(err)
	}

	key := cache.Key(cache.CatalogKeyPrefix, "photo:"+id)

	found, err := cache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*models.CatalogArtwork, error) {
		return s.source.Get(ctx, id)
	})

	if stderrors.Is(err, catalog.ErrNotFound) {
		metrics.CatalogRequests.WithLabelValues("get", metrics.OutcomeNoop).Inc()

		return nil, errors.ArtworkNotFoundError("Artwork not found")
	}

	metrics.CatalogRequests.WithLabelValues("get", metrics.Outcome(err)).Inc()

	if err != nil {
		return nil, errors.ThirdPartyError("Failed to fetch artwork").WithError(err)
	}

	item := galleryItemFromCatalog(*found)

	return &item, nil
}

func galleryItemFromArtwork(a *models.ArtworkRecord) models.GalleryItem {
	s := snapshot.Normalize(snapshot.Raw(mergedFields(a)))

	return models.GalleryItem{
		ID:          a.ID,
		Title:       s.Title,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		ThumbURL:    s.ThumbURL,
		Artist: models.ArtistDisplay{
			Name:     s.ArtistName,
			Location: s.ArtistLocation,
			Photo:    s.ArtistPhoto,
		},
		Price:     s.Price,
		Size:      s.Size,
		Tags:      s.Tags,
		CreatedAt: s.CreatedAt,
		Source:    models.GallerySourceArtist,
	}
}

func galleryItemFromCatalog(c models.CatalogArtwork) models.GalleryItem {
	title := c.Title
	if title == "" {
		title = snapshot.DefaultTitle
	}

	artist := c.Artist
	if artist.Name == "" {
		artist.Name = snapshot.DefaultArtist
	}

	tags := c.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	return models.GalleryItem{
		ID:        c.ID,
		Title:     title,
		ImageURL:  c.ImageURLs.Regular,
		ThumbURL:  c.ImageURLs.Small,
		Artist:    artist,
		Price:     catalog.PriceFor(c.ID),
		Size:      catalog.SizeFor(c.ID),
		Tags:      tags,
		CreatedAt: c.CreatedAt,
		Source:    models.GallerySourceCatalog,
	}
}
