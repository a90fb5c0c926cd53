package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frameart/storefront/internal/api/handlers"
	appErrors "github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/models"
	"github.com/frameart/storefront/internal/services/mocks"
	"github.com/frameart/storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func checkoutBody() []byte {
	body, _ := json.Marshal(models.CheckoutRequest{
		Shipping: models.ShippingDetails{
			FullName:   "Ana Lima",
			Email:      "ana@example.com",
			Address:    "Rua das Flores 10",
			City:       "Lisbon",
			PostalCode: "1200-195",
			Country:    "Portugal",
		},
		Payment: models.PaymentDetails{CardNumber: "4242424242424242", Expiry: "12/30", CVC: "123"},
	})

	return body
}

func TestCheckout(t *testing.T) {
	t.Run("Success - Order placed", func(t *testing.T) {
		// Arrange
		checkoutService := new(mocks.CheckoutService)
		sess, cart, _ := testutils.NewTestSession(models.Authenticated("user-1", "ana@example.com"))
		checkoutService.On("Checkout", mock.Anything, models.Authenticated("user-1", "ana@example.com"), cart, mock.AnythingOfType("*models.CheckoutRequest")).
			Return(&models.CheckoutResponse{OrderNumber: "order-1", Total: 30, Items: 2, PurchasedAt: time.Now()}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutBody()), sess, nil)
		rr := httptest.NewRecorder()

		// Act
		handlers.NewCheckoutHandler(checkoutService).Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var out models.CheckoutResponse
		decodeResponse(t, rr, &out)
		assert.Equal(t, "order-1", out.OrderNumber)
		checkoutService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid card", func(t *testing.T) {
		checkoutService := new(mocks.CheckoutService)
		sess, _, _ := testutils.NewTestSession(models.Authenticated("user-1", ""))

		var req models.CheckoutRequest
		_ = json.Unmarshal(checkoutBody(), &req)
		req.Payment.CardNumber = "1234"
		body, _ := json.Marshal(req)

		httpReq := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body), sess, nil)
		rr := httptest.NewRecorder()

		handlers.NewCheckoutHandler(checkoutService).Checkout().ServeHTTP(rr, httpReq)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		checkoutService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Guest", func(t *testing.T) {
		checkoutService := new(mocks.CheckoutService)
		sess, _, _ := testutils.NewTestSession(models.Guest())

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutBody()), sess, nil)
		rr := httptest.NewRecorder()

		handlers.NewCheckoutHandler(checkoutService).Checkout().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Failure - Empty cart", func(t *testing.T) {
		checkoutService := new(mocks.CheckoutService)
		sess, _, _ := testutils.NewTestSession(models.Authenticated("user-1", ""))
		checkoutService.On("Checkout", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, appErrors.ValidationError("Your cart is empty")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutBody()), sess, nil)
		rr := httptest.NewRecorder()

		handlers.NewCheckoutHandler(checkoutService).Checkout().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr, nil)
		assert.Equal(t, "Your cart is empty", resp.Error.Message)
	})
}
