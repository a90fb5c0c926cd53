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

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// Checkout godoc
//
//	@Summary		Check out the cart
//	@Description	Places an order from the signed-in cart, publishes the order event and clears the cart.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			order	body	models.CheckoutRequest	true	"Shipping details"
//	@Success		201	{object}	models.CheckoutResponse	"Order placed"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		503	{object}	response.ErrorResponse	"Remote cart unavailable"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sess, ident, ok := requireSignedIn(w, r, "Please sign in to checkout")
		if !ok {
			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.checkoutService.Checkout(r.Context(), ident, sess.Cart, &req)
		if err != nil {
			log.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		log.Info("Order placed", slog.String("order_number", resp.OrderNumber))
		response.Success(w, http.StatusCreated, resp)
	}
}
