package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frameart/storefront/internal/api/handlers"
	appErrors "github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/models"
	"github.com/frameart/storefront/internal/services/mocks"
	"github.com/frameart/storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupArtworkTest() (*mocks.PublicationService, *handlers.ArtworkHandler) {
	publicationService := new(mocks.PublicationService)

	return publicationService, handlers.NewArtworkHandler(publicationService)
}

func TestCreateArtwork(t *testing.T) {
	t.Run("Success - Draft created", func(t *testing.T) {
		// Arrange
		publicationService, handler := setupArtworkTest()
		sess, _, _ := testutils.NewTestSession(models.Authenticated("artist-1", ""))
		publicationService.On("CreateDraft", mock.Anything, "artist-1", mock.MatchedBy(func(req *models.CreateArtworkRequest) bool {
			return req.Title == "Harbour at Dusk" && req.Price == 420
		})).Return(&models.ArtworkRecord{ID: "art-1", OwnerID: "artist-1", Title: "Harbour at Dusk"}, nil).Once()

		body := `{"title":"Harbour at Dusk","price":420,"width":60,"height":80,"tags":"sea, dusk","imageUrl":"https://images.example/h.jpg"}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/artist/artworks", bytes.NewReader([]byte(body)), sess, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.CreateArtwork().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var record models.ArtworkRecord
		decodeResponse(t, rr, &record)
		assert.Equal(t, "art-1", record.ID)
		publicationService.AssertExpectations(t)
	})

	t.Run("Failure - Not an artist", func(t *testing.T) {
		publicationService, handler := setupArtworkTest()
		sess, _, _ := testutils.NewTestSession(models.Authenticated("user-1", ""))
		publicationService.On("CreateDraft", mock.Anything, "user-1", mock.Anything).
			Return(nil, appErrors.ForbiddenError("Only artists can create artworks")).Once()

		body := `{"title":"Sketch","imageUrl":"https://images.example/s.jpg"}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/artist/artworks", bytes.NewReader([]byte(body)), sess, nil)
		rr := httptest.NewRecorder()

		handler.CreateArtwork().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Failure - Signed out", func(t *testing.T) {
		publicationService, handler := setupArtworkTest()
		sess, _, _ := testutils.NewTestSession(models.Anonymous())

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/artist/artworks", bytes.NewReader([]byte(`{}`)), sess, nil)
		rr := httptest.NewRecorder()

		handler.CreateArtwork().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		publicationService.AssertNotCalled(t, "CreateDraft", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListAndGetArtworks(t *testing.T) {
	t.Run("Success - List own artworks", func(t *testing.T) {
		publicationService, handler := setupArtworkTest()
		sess, _, _ := testutils.NewTestSession(models.Authenticated("artist-1", ""))
		publicationService.On("ListByOwner", mock.Anything, "artist-1").Return([]*models.ArtworkRecord{{ID: "art-1"}, {ID: "art-2"}}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/artist/artworks", nil, sess, nil)
		rr := httptest.NewRecorder()

		handler.ListArtworks().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var records []models.ArtworkRecord
		decodeResponse(t, rr, &records)
		assert.Len(t, records, 2)
	})

	t.Run("Failure - Someone else's artwork", func(t *testing.T) {
		publicationService, handler := setupArtworkTest()
		sess, _, _ := testutils.NewTestSession(models.Authenticated("artist-2", ""))
		publicationService.On("Get", mock.Anything, "artist-2", "art-1").
			Return(nil, appErrors.ForbiddenError("You can only manage your own artworks")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/artist/artworks/art-1", nil, sess, map[string]string{"id": "art-1"})
		rr := httptest.NewRecorder()

		handler.GetArtwork().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestUpdateArtwork(t *testing.T) {
	// Arrange
	publicationService, handler := setupArtworkTest()
	sess, _, _ := testutils.NewTestSession(models.Authenticated("artist-1", ""))
	carts := models.FanOutReport{ArtworkID: "art-1"}
	publicationService.On("Update", mock.Anything, "artist-1", "art-1", mock.MatchedBy(func(req *models.UpdateArtworkRequest) bool {
		return req.Title != nil && *req.Title == "New title" && req.Price == nil
	})).Return(&models.ArtworkMutationResult{
		Artwork:   &models.ArtworkRecord{ID: "art-1", Title: "New title"},
		Favorites: models.FanOutReport{ArtworkID: "art-1", Updated: []string{"user-1"}, Failed: map[string]string{"user-2": "unavailable"}},
		Carts:     &carts,
	}, nil).Once()

	req := testutils.CreateTestRequestWithContext(http.MethodPatch, "/api/v1/artist/artworks/art-1",
		bytes.NewReader([]byte(`{"title":"New title"}`)), sess, map[string]string{"id": "art-1"})
	rr := httptest.NewRecorder()

	// Act
	handler.UpdateArtwork().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)

	var result models.ArtworkMutationResult
	decodeResponse(t, rr, &result)
	assert.Equal(t, []string{"user-1"}, result.Favorites.Updated)
	assert.Equal(t, "unavailable", result.Favorites.Failed["user-2"])
	publicationService.AssertExpectations(t)
}

func TestPublishAndDeleteArtwork(t *testing.T) {
	t.Run("Success - Publish", func(t *testing.T) {
		publicationService, handler := setupArtworkTest()
		sess, _, _ := testutils.NewTestSession(models.Authenticated("artist-1", ""))
		publicationService.On("Publish", mock.Anything, "artist-1", "art-1").
			Return(&models.ArtworkRecord{ID: "art-1", IsPublished: true}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/artist/artworks/art-1/publish", nil, sess, map[string]string{"id": "art-1"})
		rr := httptest.NewRecorder()

		handler.PublishArtwork().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var record models.ArtworkRecord
		decodeResponse(t, rr, &record)
		assert.True(t, record.IsPublished)
	})

	t.Run("Success - Delete", func(t *testing.T) {
		publicationService, handler := setupArtworkTest()
		sess, _, _ := testutils.NewTestSession(models.Authenticated("artist-1", ""))
		carts := models.FanOutReport{ArtworkID: "art-1", Updated: []string{"user-3"}}
		publicationService.On("Delete", mock.Anything, "artist-1", "art-1").Return(&models.ArtworkMutationResult{
			Favorites: models.FanOutReport{ArtworkID: "art-1"},
			Carts:     &carts,
		}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/artist/artworks/art-1", nil, sess, map[string]string{"id": "art-1"})
		rr := httptest.NewRecorder()

		handler.DeleteArtwork().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var result models.ArtworkMutationResult
		decodeResponse(t, rr, &result)
		if assert.NotNil(t, result.Carts) {
			assert.Equal(t, []string{"user-3"}, result.Carts.Updated)
		}
	})

	t.Run("Failure - Missing artwork", func(t *testing.T) {
		publicationService, handler := setupArtworkTest()
		sess, _, _ := testutils.NewTestSession(models.Authenticated("artist-1", ""))
		publicationService.On("Delete", mock.Anything, "artist-1", "ghost").
			Return(nil, appErrors.ArtworkNotFoundError("Artwork not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/artist/artworks/ghost", nil, sess, map[string]string{"id": "ghost"})
		rr := httptest.NewRecorder()

		handler.DeleteArtwork().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
