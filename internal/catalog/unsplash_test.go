package catalog_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/frameart/storefront/internal/catalog"
	"github.com/frameart/storefront/internal/config"
	"github.com/frameart/storefront/internal/models"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const photoJSON = `{
	"id": "abc123",
	"alt_description": "blue ocean waves",
	"created_at": "2024-03-01T10:00:00Z",
	"urls": {"regular": "https://images.example/abc-regular.jpg", "small": "https://images.example/abc-small.jpg"},
	"user": {"name": "Ana Lima", "location": "Lisbon", "profile_image": {"medium": "https://images.example/ana.jpg"}},
	"tags": [{"title": "ocean"}, {"title": "blue"}]
}`

func newClient(t *testing.T, handler http.HandlerFunc) *catalog.UnsplashClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return catalog.NewUnsplashClientWithHTTP(&config.Catalog{
		UnsplashAccessKey:  "test-key",
		BaseURL:            server.URL,
		PerPage:            30,
		BreakerMaxFailures: 2,
		BreakerOpenTimeout: time.Minute,
	}, server.Client())
}

func TestSearch(t *testing.T) {
	t.Run("Success - Maps results", func(t *testing.T) {
		// Arrange
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/photos", r.URL.Path)
			assert.Equal(t, "ocean", r.URL.Query().Get("query"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "30", r.URL.Query().Get("per_page"))
			assert.Equal(t, "landscape", r.URL.Query().Get("orientation"))
			assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"total": 1, "total_pages": 1, "results": [` + photoJSON + `]}`))
		})

		// Act
		got, err := client.Search(t.Context(), "ocean", 2)

		// Assert
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, models.CatalogArtwork{
			ID:        "abc123",
			Title:     "blue ocean waves",
			ImageURLs: models.ImageURLs{Regular: "https://images.example/abc-regular.jpg", Small: "https://images.example/abc-small.jpg"},
			Artist:    models.ArtistDisplay{Name: "Ana Lima", Location: "Lisbon", Photo: "https://images.example/ana.jpg"},
			Tags:      []models.Tag{{Title: "ocean"}, {Title: "blue"}},
			CreatedAt: "2024-03-01T10:00:00Z",
		}, got[0])
	})

	t.Run("Failure - Upstream error", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		got, err := client.Search(t.Context(), "ocean", 1)

		require.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("Failure - Breaker opens after consecutive failures", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		})

		// Act
		_, _ = client.Search(t.Context(), "ocean", 1)
		_, _ = client.Search(t.Context(), "ocean", 1)
		_, err := client.Search(t.Context(), "ocean", 1)

		// Assert
		require.ErrorIs(t, err, gobreaker.ErrOpenState)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestGet(t *testing.T) {
	t.Run("Success - Returns photo", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/photos/abc123", r.URL.Path)
			_, _ = w.Write([]byte(photoJSON))
		})

		got, err := client.Get(t.Context(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "abc123", got.ID)
		assert.Equal(t, "Ana Lima", got.Artist.Name)
	})

	t.Run("Failure - Not found does not trip the breaker", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		})

		// Act
		for range 3 {
			_, err := client.Get(t.Context(), "missing")
			require.ErrorIs(t, err, catalog.ErrNotFound)
		}

		// Assert
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("Failure - Empty id", func(t *testing.T) {
		client := newClient(t, func(http.ResponseWriter, *http.Request) {
			t.Fatal("unexpected request")
		})

		_, err := client.Get(t.Context(), "")

		assert.True(t, errors.Is(err, catalog.ErrNotFound))
	})
}

func TestPriceAndSize(t *testing.T) {
	for _, id := range []string{"abc123", "x", "a-much-longer-catalog-identifier"} {
		price := catalog.PriceFor(id)
		assert.GreaterOrEqual(t, price, 500.0)
		assert.Less(t, price, 3500.0)
		assert.Equal(t, price, catalog.PriceFor(id))

		size := catalog.SizeFor(id)
		assert.GreaterOrEqual(t, size.Width, 50)
		assert.Less(t, size.Width, 150)
		assert.GreaterOrEqual(t, size.Height, 70)
		assert.Less(t, size.Height, 200)
		assert.Equal(t, size, catalog.SizeFor(id))
	}
}
