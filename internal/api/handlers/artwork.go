package handlers

import (
	"log/slog"
	"net/http"

	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	service "github.com/frameart/storefront/internal/services"
	"github.com/frameart/storefront/internal/utils"
	"github.com/frameart/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const signInToManageArtworks = "Please sign in to manage your artworks"

type ArtworkHandler struct {
	publicationService service.PublicationService
	validator          *validator.Validate
}

func NewArtworkHandler(publicationService service.PublicationService) *ArtworkHandler {
	return &ArtworkHandler{publicationService: publicationService, validator: validator.New()}
}

// ListArtworks godoc
//
//	@Summary		List own artworks
//	@Tags			Artist
//	@Produce		json
//	@Success		200	{object}	[]models.ArtworkRecord	"Artworks owned by the caller"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/artist/artworks [get]
func (h *ArtworkHandler) ListArtworks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ident, ok := requireSignedIn(w, r, signInToManageArtworks)
		if !ok {
			return
		}

		artworks, err := h.publicationService.ListByOwner(r.Context(), ident.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list artworks", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, artworks)
	}
}

// CreateArtwork godoc
//
//	@Summary		Create a draft artwork
//	@Tags			Artist
//	@Accept			json
//	@Produce		json
//	@Param			artwork	body	models.CreateArtworkRequest	true	"Draft details"
//	@Success		201	{object}	models.ArtworkRecord	"Draft created"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		403	{object}	response.ErrorResponse	"Artist role required"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/artist/artworks [post]
func (h *ArtworkHandler) CreateArtwork() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		_, ident, ok := requireSignedIn(w, r, signInToManageArtworks)
		if !ok {
			return
		}

		var req models.CreateArtworkRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		artwork, err := h.publicationService.CreateDraft(r.Context(), ident.UserID, &req)
		if err != nil {
			log.Warn("Failed to create artwork", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		log.Info("Artwork draft created", slog.String("artwork_id", artwork.ID))
		response.Success(w, http.StatusCreated, artwork)
	}
}

// GetArtwork godoc
//
//	@Summary		Get an own artwork
//	@Tags			Artist
//	@Produce		json
//	@Param			id	path	string	true	"Artwork ID"
//	@Success		200	{object}	models.ArtworkRecord	"Artwork"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		403	{object}	response.ErrorResponse	"Not the owner"
//	@Failure		404	{object}	response.ErrorResponse	"Artwork not found"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/artist/artworks/{id} [get]
func (h *ArtworkHandler) GetArtwork() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ident, ok := requireSignedIn(w, r, signInToManageArtworks)
		if !ok {
			return
		}

		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		artwork, err := h.publicationService.Get(r.Context(), ident.UserID, id)
		if err != nil {
			logger.FromContext(r.Context()).Warn("Artwork lookup failed", slog.String("artwork_id", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, artwork)
	}
}

// UpdateArtwork responds with the fan-out report so partial snapshot
// refreshes are visible to the artist.
//
//	@Summary		Update an artwork
//	@Description	Updates the artwork and refreshes the cart and favorites snapshots that reference it.
//	@Tags			Artist
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Artwork ID"
//	@Param			artwork	body	models.UpdateArtworkRequest	true	"Fields to change"
//	@Success		200	{object}	models.ArtworkMutationResult	"Update and snapshot refresh report"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		403	{object}	response.ErrorResponse	"Not the owner"
//	@Failure		404	{object}	response.ErrorResponse	"Artwork not found"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/artist/artworks/{id} [patch]
func (h *ArtworkHandler) UpdateArtwork() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		_, ident, ok := requireSignedIn(w, r, signInToManageArtworks)
		if !ok {
			return
		}

		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.UpdateArtworkRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.publicationService.Update(r.Context(), ident.UserID, id, &req)
		if err != nil {
			log.Error("Failed to update artwork", slog.String("artwork_id", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// PublishArtwork godoc
//
//	@Summary		Publish an artwork
//	@Tags			Artist
//	@Produce		json
//	@Param			id	path	string	true	"Artwork ID"
//	@Success		200	{object}	models.ArtworkRecord	"Published artwork"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		403	{object}	response.ErrorResponse	"Not the owner"
//	@Failure		404	{object}	response.ErrorResponse	"Artwork not found"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/artist/artworks/{id}/publish [post]
func (h *ArtworkHandler) PublishArtwork() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		_, ident, ok := requireSignedIn(w, r, signInToManageArtworks)
		if !ok {
			return
		}

		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		artwork, err := h.publicationService.Publish(r.Context(), ident.UserID, id)
		if err != nil {
			log.Error("Failed to publish artwork", slog.String("artwork_id", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		log.Info("Artwork published", slog.String("artwork_id", id))
		response.Success(w, http.StatusOK, artwork)
	}
}

// DeleteArtwork godoc
//
//	@Summary		Delete an artwork
//	@Description	Deletes the artwork and removes it from carts and favorites that reference it.
//	@Tags			Artist
//	@Produce		json
//	@Param			id	path	string	true	"Artwork ID"
//	@Success		200	{object}	models.ArtworkMutationResult	"Delete report"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		403	{object}	response.ErrorResponse	"Not the owner"
//	@Failure		404	{object}	response.ErrorResponse	"Artwork not found"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/artist/artworks/{id} [delete]
func (h *ArtworkHandler) DeleteArtwork() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		_, ident, ok := requireSignedIn(w, r, signInToManageArtworks)
		if !ok {
			return
		}

		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		result, err := h.publicationService.Delete(r.Context(), ident.UserID, id)
		if err != nil {
			log.Error("Failed to delete artwork", slog.String("artwork_id", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		log.Info("Artwork deleted", slog.String("artwork_id", id))
		response.Success(w, http.StatusOK, result)
	}
}
