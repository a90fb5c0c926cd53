package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/events"
	"github.com/frameart/storefront/internal/localstore"
	"github.com/frameart/storefront/internal/models"
	repository "github.com/frameart/storefront/internal/repositories"
	"github.com/frameart/storefront/internal/repositories/mocks"
	service "github.com/frameart/storefront/internal/services"
	mailMocks "github.com/frameart/storefront/pkg/sendgrid/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func checkoutRequest(email string) *models.CheckoutRequest {
	return &models.CheckoutRequest{
		Shipping: models.ShippingDetails{
			FullName:   "Ana Lima",
			Email:      email,
			Address:    "Rua das Flores 10",
			City:       "Lisbon",
			PostalCode: "1200-195",
			Country:    "Portugal",
		},
		Payment: models.PaymentDetails{CardNumber: "4242424242424242", Expiry: "12/30", CVC: "123"},
	}
}

// signedInCart returns a cart engine that belongs to userID and holds lines.
func signedInCart(t *testing.T, profiles repository.ProfileRepository, userID string, lines ...models.CartLine) *service.CartEngine {
	t.Helper()

	require.NoError(t, profiles.SaveCart(t.Context(), userID, lines))

	engine := service.NewCartEngine(profiles, localstore.NewMemoryStore(), service.MergeAuthoritative)
	require.NoError(t, engine.OnSignIn(t.Context(), userID))

	return engine
}

func TestCheckout(t *testing.T) {
	ctx := t.Context()
	ident := models.Authenticated("user-1", "ana@example.com")

	t.Run("Success - Records the purchase and clears the cart", func(t *testing.T) {
		// Arrange
		profiles := newMemoryProfiles()
		require.NoError(t, profiles.CreateProfile(ctx, &models.Profile{ID: "user-1", Email: "ana@example.com"}))
		cart := signedInCart(t, profiles, "user-1", line("A", 2), line("B", 1))
		publisher := &recordingPublisher{}
		mailer := mailMocks.NewEmailService(t)
		mailer.On("Send", mock.Anything, mock.MatchedBy(func(req *models.EmailNotificationRequest) bool {
			return req.To == "ana@example.com"
		})).Return(nil).Once()

		checkout := service.NewCheckoutService(profiles, publisher, mailer)

		// Act
		resp, err := checkout.Checkout(ctx, ident, cart, checkoutRequest("ana@example.com"))

		// Assert
		require.NoError(t, err)
		assert.NotEmpty(t, resp.OrderNumber)
		assert.InDelta(t, 30.0, resp.Total, 0.001)
		assert.Equal(t, 2, resp.Items)

		profile, err := profiles.GetProfile(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, profile.Purchases, 1)
		assert.Equal(t, resp.OrderNumber, profile.Purchases[0].ID)
		assert.Equal(t, "SIM-4242", profile.Purchases[0].PaymentRef)
		assert.Empty(t, profile.Cart)

		remaining, err := cart.Cart(ctx)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, events.TypePurchaseCompleted, publisher.events[0].Type)
		assert.Equal(t, "user-1", publisher.events[0].UserID)
	})

	t.Run("Success - Receipt failure does not fail the checkout", func(t *testing.T) {
		profiles := newMemoryProfiles()
		cart := signedInCart(t, profiles, "user-1", line("A", 1))
		mailer := mailMocks.NewEmailService(t)
		mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		checkout := service.NewCheckoutService(profiles, events.NewNopPublisher(), mailer)

		resp, err := checkout.Checkout(ctx, ident, cart, checkoutRequest("ana@example.com"))

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Items)
	})

	t.Run("Success - No mailer configured", func(t *testing.T) {
		profiles := newMemoryProfiles()
		cart := signedInCart(t, profiles, "user-1", line("A", 1))
		checkout := service.NewCheckoutService(profiles, events.NewNopPublisher(), nil)

		_, err := checkout.Checkout(ctx, ident, cart, checkoutRequest("ana@example.com"))

		require.NoError(t, err)
	})

	t.Run("Failure - Not signed in", func(t *testing.T) {
		profiles := newMemoryProfiles()
		cart := service.NewCartEngine(profiles, localstore.NewMemoryStore(), service.MergeAuthoritative)
		checkout := service.NewCheckoutService(profiles, events.NewNopPublisher(), nil)

		_, err := checkout.Checkout(ctx, models.Guest(), cart, checkoutRequest("ana@example.com"))

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotAuthenticated))
	})

	t.Run("Failure - Empty cart", func(t *testing.T) {
		profiles := newMemoryProfiles()
		cart := signedInCart(t, profiles, "user-1")
		checkout := service.NewCheckoutService(profiles, events.NewNopPublisher(), nil)

		_, err := checkout.Checkout(ctx, ident, cart, checkoutRequest("ana@example.com"))

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
	})

	t.Run("Failure - Purchase not recorded keeps the cart", func(t *testing.T) {
		// Arrange
		profiles := &mocks.ProfileRepository{}
		profiles.On("GetCart", mock.Anything, "user-1").Return([]models.CartLine{line("A", 1)}, nil).Once()
		profiles.On("AppendPurchase", mock.Anything, "user-1", mock.Anything).Return(errors.New("unavailable")).Once()

		cart := service.NewCartEngine(profiles, localstore.NewMemoryStore(), service.MergeAuthoritative)
		require.NoError(t, cart.OnSignIn(ctx, "user-1"))

		checkout := service.NewCheckoutService(profiles, events.NewNopPublisher(), nil)

		// Act
		_, err := checkout.Checkout(ctx, ident, cart, checkoutRequest("ana@example.com"))

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))

		lines, err := cart.Cart(ctx)
		require.NoError(t, err)
		assert.Len(t, lines, 1)
		profiles.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything, mock.Anything)
	})
}
