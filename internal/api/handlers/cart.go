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

// CartHandler serves the cart of the calling session. The session decides
// whether that is the local guest cart or the signed-in user's cart.
type CartHandler struct {
	validator *validator.Validate
}

func NewCartHandler() *CartHandler {
	return &CartHandler{validator: validator.New()}
}

// GetCart godoc
//
//	@Summary		Get the cart
//	@Description	Returns the guest cart or the signed-in user's cart with its total.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView	"Cart"
//	@Failure		503	{object}	response.ErrorResponse	"Remote cart unavailable"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		view, err := sess.Cart.View(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to load cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// AddItem godoc
//
//	@Summary		Add an artwork to the cart
//	@Description	Adds a line with quantity 1, or increments the existing line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body	models.AddToCartRequest	true	"Artwork snapshot and optional price"
//	@Success		200	{object}	models.CartView	"Updated cart"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		503	{object}	response.ErrorResponse	"Remote write failed"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.AddToCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := sess.Cart.AddToCart(r.Context(), req.Artwork, req.Price)
		if err != nil {
			log.Error("Failed to add to cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		log.Info("Item added to cart", slog.Int("count", view.Count))
		response.Success(w, http.StatusOK, view)
	}
}

// UpdateQuantity removes the line when the quantity is below 1.
//
//	@Summary		Set a line quantity
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Artwork ID"
//	@Param			quantity	body	models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200	{object}	models.CartView	"Updated cart"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		404	{object}	response.ErrorResponse	"Line not in cart"
//	@Failure		503	{object}	response.ErrorResponse	"Remote write failed"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/cart/items/{id} [patch]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
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

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := sess.Cart.UpdateQuantity(r.Context(), id, *req.Quantity)
		if err != nil {
			logger.FromContext(r.Context()).Warn("Failed to update quantity", slog.String("artwork_id", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// RemoveItem godoc
//
//	@Summary		Remove a line
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path	string	true	"Artwork ID"
//	@Success		200	{object}	models.CartView	"Updated cart"
//	@Failure		404	{object}	response.ErrorResponse	"Line not in cart"
//	@Failure		503	{object}	response.ErrorResponse	"Remote write failed"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
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

		view, err := sess.Cart.RemoveFromCart(r.Context(), id)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to remove from cart", slog.String("artwork_id", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// ClearCart godoc
//
//	@Summary		Clear the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView	"Empty cart"
//	@Failure		503	{object}	response.ErrorResponse	"Remote write failed"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		if err := sess.Cart.ClearCart(r.Context()); err != nil {
			logger.FromContext(r.Context()).Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, &models.CartView{Items: []models.CartLine{}})
	}
}
