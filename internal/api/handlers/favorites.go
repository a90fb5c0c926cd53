package handlers

import (
	"log/slog"
	"net/http"

	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	"github.com/frameart/storefront/internal/utils"
	"github.com/frameart/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type FavoritesHandler struct {
	validator *validator.Validate
}

func NewFavoritesHandler() *FavoritesHandler {
	return &FavoritesHandler{validator: validator.New()}
}

// ListFavorites answers from the session cache and never fails.
//
//	@Summary		List favorites
//	@Tags			Favorites
//	@Produce		json
//	@Success		200	{object}	[]models.FavoriteEntry	"Cached favorites"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/favorites [get]
func (h *FavoritesHandler) ListFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, sess.Favorites.Favorites())
	}
}

// RefreshFavorites godoc
//
//	@Summary		Refresh favorites
//	@Description	Re-reads the stored favorites and copies current display fields from live artworks.
//	@Tags			Favorites
//	@Produce		json
//	@Success		200	{object}	[]models.FavoriteEntry	"Refreshed favorites"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/favorites/refresh [get]
func (h *FavoritesHandler) RefreshFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		entries, err := sess.Favorites.Refresh(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to refresh favorites", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, entries)
	}
}

// ToggleFavorite godoc
//
//	@Summary		Toggle a favorite
//	@Tags			Favorites
//	@Accept			json
//	@Produce		json
//	@Param			artwork	body	models.ToggleFavoriteRequest	true	"Artwork snapshot"
//	@Success		200	{object}	models.ToggleFavoriteResponse	"Whether the artwork was added"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		503	{object}	response.ErrorResponse	"Favorites could not be saved"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/favorites/toggle [post]
func (h *FavoritesHandler) ToggleFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.ToggleFavoriteRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		added, err := sess.Favorites.ToggleFavorite(r.Context(), req.Artwork)
		if err != nil {
			log.Warn("Favorite toggle failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		message := "Removed from favourites"
		if added {
			message = "Added to favourites"
		}

		response.Success(w, http.StatusOK, models.ToggleFavoriteResponse{Added: added, Message: message})
	}
}

// FavoriteStatus godoc
//
//	@Summary		Check a favorite
//	@Tags			Favorites
//	@Produce		json
//	@Param			id	path	string	true	"Artwork ID"
//	@Success		200	{object}	models.FavoriteStatusResponse	"Favorite status"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/favorites/{id} [get]
func (h *FavoritesHandler) FavoriteStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.FavoriteStatusResponse{ArtworkID: id, Favorited: sess.Favorites.IsFavorited(id)})
	}
}
