package repository_test

import (
	"testing"
	"time"

	"github.com/frameart/storefront/internal/models"
	repository "github.com/frameart/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository(t *testing.T) {
	ctx := t.Context()

	t.Run("CreateProfile stores the sign-up shape", func(t *testing.T) {
		// Arrange
		docs := repository.NewMemoryDocumentStore()
		repo := repository.NewProfileRepo(docs)
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		// Act
		err := repo.CreateProfile(ctx, &models.Profile{
			ID:        "u1",
			Email:     "ada@example.com",
			FirstName: "Ada",
			LastName:  "Lovelace",
			CreatedAt: created,
		})

		// Assert
		require.NoError(t, err)

		doc, err := docs.GetDocument(ctx, "users", "u1")
		require.NoError(t, err)
		assert.Equal(t, []any{}, doc["favorites"])
		assert.Equal(t, []any{}, doc["cart"])
		assert.Equal(t, []any{}, doc["purchases"])
		assert.Nil(t, doc["artworks"], "non-artists store a null artworks list")

		profile, err := repo.GetProfile(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", profile.DisplayName())
		assert.Equal(t, created, profile.CreatedAt)
		assert.False(t, profile.IsArtist)
		assert.Nil(t, profile.Artworks)
	})

	t.Run("GetProfile missing", func(t *testing.T) {
		repo := repository.NewProfileRepo(repository.NewMemoryDocumentStore())

		_, err := repo.GetProfile(ctx, "ghost")

		require.ErrorIs(t, err, repository.ErrDocumentNotFound)
	})

	t.Run("Cart round trip creates a missing document", func(t *testing.T) {
		// Arrange
		repo := repository.NewProfileRepo(repository.NewMemoryDocumentStore())
		lines := []models.CartLine{
			{ArtworkID: "A", Title: "Dawn", Price: 10, Quantity: 2, ImageURL: "https://img/a.jpg", Artist: "Ada"},
			{ArtworkID: "B", Title: "Dusk", Price: 5, Quantity: 1, ImageURL: "https://img/b.jpg", Artist: "Grace"},
		}

		// Act
		empty, err := repo.GetCart(ctx, "u1")
		require.NoError(t, err)

		err = repo.SaveCart(ctx, "u1", lines)
		require.NoError(t, err)

		got, err := repo.GetCart(ctx, "u1")

		// Assert
		require.NoError(t, err)
		assert.Empty(t, empty)
		assert.NotNil(t, empty)
		assert.Equal(t, lines, got)
	})

	t.Run("SaveFavorites does not touch the cart", func(t *testing.T) {
		// Arrange
		repo := repository.NewProfileRepo(repository.NewMemoryDocumentStore())
		added := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

		require.NoError(t, repo.SaveCart(ctx, "u1", []models.CartLine{{ArtworkID: "A", Title: "Dawn", Quantity: 1}}))

		// Act
		err := repo.SaveFavorites(ctx, "u1", []models.FavoriteEntry{{ArtworkID: "F", Title: "Fog", AddedAt: added}})
		require.NoError(t, err)

		// Assert
		favorites, err := repo.GetFavorites(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, favorites, 1)
		assert.Equal(t, "F", favorites[0].ArtworkID)
		assert.Equal(t, added, favorites[0].AddedAt)

		cart, err := repo.GetCart(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, cart, 1)
	})

	t.Run("AppendPurchase keeps earlier purchases", func(t *testing.T) {
		// Arrange
		repo := repository.NewProfileRepo(repository.NewMemoryDocumentStore())
		first := models.Purchase{ID: "p1", Total: 10, Items: []models.CartLine{{ArtworkID: "A", Quantity: 1, Price: 10}}}
		second := models.Purchase{ID: "p2", Total: 5}

		// Act
		require.NoError(t, repo.AppendPurchase(ctx, "u1", first))
		require.NoError(t, repo.AppendPurchase(ctx, "u1", second))

		// Assert
		profile, err := repo.GetProfile(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, profile.Purchases, 2)
		assert.Equal(t, "p1", profile.Purchases[0].ID)
		assert.Equal(t, "A", profile.Purchases[0].Items[0].ArtworkID)
		assert.Equal(t, "p2", profile.Purchases[1].ID)
	})

	t.Run("UpdateProfile and SetArtworkIDs", func(t *testing.T) {
		// Arrange
		repo := repository.NewProfileRepo(repository.NewMemoryDocumentStore())
		require.NoError(t, repo.CreateProfile(ctx, &models.Profile{ID: "u1", FirstName: "Ada", IsArtist: true}))

		// Act
		require.NoError(t, repo.UpdateProfile(ctx, "u1", repository.Document{"location": "London"}))
		require.NoError(t, repo.SetArtworkIDs(ctx, "u1", []string{"a1", "a2"}))

		// Assert
		profile, err := repo.GetProfile(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "London", profile.Location)
		assert.Equal(t, "Ada", profile.FirstName)
		assert.Equal(t, []string{"a1", "a2"}, profile.Artworks)
	})

	t.Run("UpdateProfile on a missing profile", func(t *testing.T) {
		repo := repository.NewProfileRepo(repository.NewMemoryDocumentStore())

		err := repo.UpdateProfile(ctx, "ghost", repository.Document{"location": "Paris"})

		require.ErrorIs(t, err, repository.ErrDocumentNotFound)
	})
}
