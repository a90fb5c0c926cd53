package service_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/frameart/storefront/internal/cache"
	"github.com/frameart/storefront/internal/catalog"
	catalogMocks "github.com/frameart/storefront/internal/catalog/mocks"
	"github.com/frameart/storefront/internal/config"
	appErrors "github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/models"
	repository "github.com/frameart/storefront/internal/repositories"
	service "github.com/frameart/storefront/internal/services"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const galleryTTL = 5 * time.Minute

func newGallery(t *testing.T) (service.GalleryService, repository.ArtworkRepository, *catalogMocks.Source, redismock.ClientMock) {
	t.Helper()

	client, redisMock := redismock.NewClientMock()
	source := &catalogMocks.Source{}
	artworks := repository.NewArtworkRepo(repository.NewMemoryDocumentStore())

	t.Cleanup(func() {
		source.AssertExpectations(t)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	gallery := service.NewGalleryService(artworks, source, cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: galleryTTL}), galleryTTL)

	return gallery, artworks, source, redisMock
}

func catalogItem(id string) models.CatalogArtwork {
	return models.CatalogArtwork{
		ID:        id,
		Title:     "Catalog " + id,
		ImageURLs: models.ImageURLs{Regular: "https://images.example/" + id + "-r.jpg", Small: "https://images.example/" + id + "-s.jpg"},
		Artist:    models.ArtistDisplay{Name: "Stock Artist"},
		Tags:      []models.Tag{},
	}
}

func TestGalleryList(t *testing.T) {
	ctx := t.Context()
	searchKey := cache.Key(cache.CatalogKeyPrefix, "search:ocean:1")

	t.Run("Success - Artist works come before catalog items", func(t *testing.T) {
		// Arrange
		gallery, artworks, source, redisMock := newGallery(t)
		published := &models.ArtworkRecord{OwnerID: "artist-1", Title: "Sea", Price: 300, ArtistName: "Ana Lima", IsPublished: true}
		require.NoError(t, artworks.Create(ctx, published))
		require.NoError(t, artworks.Create(ctx, &models.ArtworkRecord{OwnerID: "artist-1", Title: "Draft"}))

		results := []models.CatalogArtwork{catalogItem("c1")}
		resultsJSON, err := json.Marshal(results)
		require.NoError(t, err)

		redisMock.ExpectGet(searchKey).RedisNil()
		source.On("Search", mock.Anything, "ocean", 1).Return(results, nil).Once()
		redisMock.ExpectSet(searchKey, resultsJSON, galleryTTL).SetVal("OK")

		// Act
		items, err := gallery.List(ctx, "ocean", 1)

		// Assert
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, published.ID, items[0].ID)
		assert.Equal(t, models.GallerySourceArtist, items[0].Source)
		assert.Equal(t, 300.0, items[0].Price)
		assert.Equal(t, "c1", items[1].ID)
		assert.Equal(t, models.GallerySourceCatalog, items[1].Source)
		assert.Equal(t, catalog.PriceFor("c1"), items[1].Price)
		assert.Equal(t, catalog.SizeFor("c1"), items[1].Size)
	})

	t.Run("Success - Cached page skips the catalog", func(t *testing.T) {
		gallery, _, _, redisMock := newGallery(t)
		cached, err := json.Marshal([]models.CatalogArtwork{catalogItem("c2")})
		require.NoError(t, err)
		redisMock.ExpectGet(searchKey).SetVal(string(cached))

		items, err := gallery.List(ctx, "ocean", 1)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "c2", items[0].ID)
	})

	t.Run("Success - Catalog outage falls back to artist works", func(t *testing.T) {
		// Arrange
		gallery, artworks, source, redisMock := newGallery(t)
		require.NoError(t, artworks.Create(ctx, &models.ArtworkRecord{OwnerID: "artist-1", Title: "Sea", IsPublished: true}))
		redisMock.ExpectGet(searchKey).RedisNil()
		source.On("Search", mock.Anything, "ocean", 1).Return(nil, errors.New("breaker open")).Once()

		// Act
		items, err := gallery.List(ctx, "ocean", 1)

		// Assert
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Sea", items[0].Title)
	})

	t.Run("Failure - Catalog outage with nothing else to show", func(t *testing.T) {
		gallery, _, source, redisMock := newGallery(t)
		redisMock.ExpectGet(searchKey).RedisNil()
		source.On("Search", mock.Anything, "ocean", 1).Return(nil, errors.New("breaker open")).Once()

		_, err := gallery.List(ctx, "ocean", 1)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
	})
}

func TestGalleryGet(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Published artist work", func(t *testing.T) {
		gallery, artworks, _, _ := newGallery(t)
		record := &models.ArtworkRecord{OwnerID: "artist-1", Title: "Sea", IsPublished: true}
		require.NoError(t, artworks.Create(ctx, record))

		item, err := gallery.Get(ctx, record.ID)

		require.NoError(t, err)
		assert.Equal(t, "Sea", item.Title)
	})

	t.Run("Success - Falls through to the catalog", func(t *testing.T) {
		// Arrange
		gallery, _, source, redisMock := newGallery(t)
		key := cache.Key(cache.CatalogKeyPrefix, "photo:c1")
		found := catalogItem("c1")
		foundJSON, err := json.Marshal(&found)
		require.NoError(t, err)

		redisMock.ExpectGet(key).RedisNil()
		source.On("Get", mock.Anything, "c1").Return(&found, nil).Once()
		redisMock.ExpectSet(key, foundJSON, galleryTTL).SetVal("OK")

		// Act
		item, err := gallery.Get(ctx, "c1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Catalog c1", item.Title)
		assert.Equal(t, "https://images.example/c1-s.jpg", item.ThumbURL)
	})

	t.Run("Failure - Neither source has it", func(t *testing.T) {
		gallery, _, source, redisMock := newGallery(t)
		key := cache.Key(cache.CatalogKeyPrefix, "photo:missing")
		redisMock.ExpectGet(key).RedisNil()
		source.On("Get", mock.Anything, "missing").Return(nil, catalog.ErrNotFound).Once()

		_, err := gallery.Get(ctx, "missing")

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeArtworkNotFound))
	})

	t.Run("Failure - Draft is not public", func(t *testing.T) {
		gallery, artworks, source, redisMock := newGallery(t)
		record := &models.ArtworkRecord{OwnerID: "artist-1", Title: "Draft"}
		require.NoError(t, artworks.Create(ctx, record))
		key := cache.Key(cache.CatalogKeyPrefix, "photo:"+record.ID)
		redisMock.ExpectGet(key).RedisNil()
		source.On("Get", mock.Anything, record.ID).Return(nil, catalog.ErrNotFound).Once()

		_, err := gallery.Get(ctx, record.ID)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeArtworkNotFound))
	})
}
