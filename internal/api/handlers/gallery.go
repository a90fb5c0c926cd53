package handlers

import (
	"log/slog"
	"net/http"

	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	service "github.com/frameart/storefront/internal/services"
	"github.com/frameart/storefront/internal/utils"
	"github.com/frameart/storefront/internal/utils/response"
)

type GalleryHandler struct {
	galleryService service.GalleryService
}

func NewGalleryHandler(galleryService service.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// ListArtworks godoc
//
//	@Summary		Browse the gallery
//	@Description	Lists published artist artworks on the first page followed by catalog results.
//	@Tags			Gallery
//	@Produce		json
//	@Param			query	query	string	false	"Search text"
//	@Param			page	query	int	false	"1-based page"	default(1)
//	@Success		200	{object}	models.PaginatedResponse	"Gallery page"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid page"
//	@Failure		500	{object}	response.ErrorResponse	"Catalog unavailable"
//	@Security		SessionID
//	@Router			/gallery [get]
func (h *GalleryHandler) ListArtworks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		page, err := utils.QueryPage(r)
		if err != nil {
			response.Error(w, err)

			return
		}

		query := r.URL.Query().Get("query")

		items, err := h.galleryService.List(r.Context(), query, page)
		if err != nil {
			log.Error("Failed to list gallery", slog.Int("page", page), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     items,
			Total:    len(items),
			Page:     page,
			PageSize: len(items),
		})
	}
}

// GetArtwork godoc
//
//	@Summary		Get a gallery artwork
//	@Tags			Gallery
//	@Produce		json
//	@Param			id	path	string	true	"Artwork ID"
//	@Success		200	{object}	models.GalleryItem	"Artwork"
//	@Failure		404	{object}	response.ErrorResponse	"Artwork not found"
//	@Failure		500	{object}	response.ErrorResponse	"Catalog unavailable"
//	@Security		SessionID
//	@Router			/gallery/{id} [get]
func (h *GalleryHandler) GetArtwork() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		item, err := h.galleryService.Get(r.Context(), id)
		if err != nil {
			logger.FromContext(r.Context()).Warn("Gallery artwork lookup failed", slog.String("artwork_id", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, item)
	}
}
