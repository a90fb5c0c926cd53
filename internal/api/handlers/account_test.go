package handlers_test

import (
	"bytes"
	"encoding/json"
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
	"github.com/stretchr/testify/require"
)

func setupAccountTest() (*mocks.AccountService, *handlers.AccountHandler) {
	accountService := new(mocks.AccountService)

	return accountService, handlers.NewAccountHandler(accountService)
}

func TestSignUp(t *testing.T) {
	t.Run("Success - Account created", func(t *testing.T) {
		// Arrange
		accountService, handler := setupAccountTest()
		accountService.On("SignUp", mock.Anything, mock.AnythingOfType("*models.SignUpRequest")).
			Return(&models.Profile{ID: "user-1", Email: "ana@example.com", FirstName: "Ana"}, nil).Once()

		body, _ := json.Marshal(models.SignUpRequest{Email: "ana@example.com", Password: "secret1", FirstName: "Ana", LastName: "Lima"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SignUp().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var profile models.Profile
		resp := decodeResponse(t, rr, &profile)
		assert.True(t, resp.Success)
		assert.Equal(t, "user-1", profile.ID)
		accountService.AssertExpectations(t)
	})

	t.Run("Failure - Short password", func(t *testing.T) {
		accountService, handler := setupAccountTest()

		body, _ := json.Marshal(models.SignUpRequest{Email: "ana@example.com", Password: "123", FirstName: "Ana", LastName: "Lima"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.SignUp().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		accountService.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Email taken", func(t *testing.T) {
		accountService, handler := setupAccountTest()
		accountService.On("SignUp", mock.Anything, mock.Anything).
			Return(nil, appErrors.DuplicateEntryError("Email already registered")).Once()

		body, _ := json.Marshal(models.SignUpRequest{Email: "ana@example.com", Password: "secret1", FirstName: "Ana", LastName: "Lima"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.SignUp().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestLogin(t *testing.T) {
	loginBody := func() *bytes.Reader {
		body, _ := json.Marshal(models.LoginRequest{Email: "ana@example.com", Password: "secret1"})

		return bytes.NewReader(body)
	}

	t.Run("Success - Signs the session in", func(t *testing.T) {
		// Arrange
		accountService, handler := setupAccountTest()
		sess, cart, favorites := testutils.NewTestSession(models.Guest())
		accountService.On("SignIn", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).Return(&models.LoginResponse{
			Success:  true,
			Token:    "token",
			Identity: models.Authenticated("user-1", "ana@example.com"),
		}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/auth/login", loginBody(), sess, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-1", sess.Manager.CurrentIdentity().UserID)
		cart.AssertCalled(t, "OnSignIn", mock.Anything, "user-1")
		favorites.AssertCalled(t, "OnSignIn", mock.Anything, "user-1")
	})

	t.Run("Failure - Wrong password", func(t *testing.T) {
		accountService, handler := setupAccountTest()
		sess, _, _ := testutils.NewTestSession(models.Guest())
		accountService.On("SignIn", mock.Anything, mock.Anything).Return(&models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: 2,
			Identity:       models.Anonymous(),
		}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/auth/login", loginBody(), sess, nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var out struct {
			RemainingTries int `json:"remaining_tries"`
		}
		resp := decodeResponse(t, rr, &out)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, resp.Error.Code)
		assert.Equal(t, 2, out.RemainingTries)
		assert.Equal(t, models.IdentityGuest, sess.Manager.CurrentIdentity().Kind)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		accountService, handler := setupAccountTest()
		sess, _, _ := testutils.NewTestSession(models.Anonymous())
		accountService.On("SignIn", mock.Anything, mock.Anything).Return(&models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: 30,
			Identity:   models.Anonymous(),
		}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/auth/login", loginBody(), sess, nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "30", rr.Header().Get("Retry-After"))
	})

	t.Run("Failure - Cart merge failed", func(t *testing.T) {
		// Arrange
		accountService, handler := setupAccountTest()
		sess, cart, _ := testutils.NewTestSession(models.Guest())
		cart.ExpectedCalls = nil
		cart.On("OnSignIn", mock.Anything, "user-1").Return(appErrors.CartPersistFailure("Failed to merge cart")).Once()
		accountService.On("SignIn", mock.Anything, mock.Anything).Return(&models.LoginResponse{
			Success:  true,
			Identity: models.Authenticated("user-1", ""),
		}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/auth/login", loginBody(), sess, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, models.IdentityGuest, sess.Manager.CurrentIdentity().Kind)
	})
}

func TestLogout(t *testing.T) {
	// Arrange
	accountService, handler := setupAccountTest()
	sess, cart, _ := testutils.NewTestSession(models.Authenticated("user-1", ""))
	accountService.On("SignOut", mock.Anything, "token").Return(nil).Once()

	req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/auth/logout", nil, sess, nil)
	req.Header.Set("Authorization", "Bearer token")
	rr := httptest.NewRecorder()

	// Act
	handler.Logout().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.IdentityAnonymous, sess.Manager.CurrentIdentity().Kind)
	cart.AssertCalled(t, "OnSignOut", mock.Anything)
	accountService.AssertExpectations(t)
}

func TestProfile(t *testing.T) {
	t.Run("Success - Own profile", func(t *testing.T) {
		accountService, handler := setupAccountTest()
		sess, _, _ := testutils.NewTestSession(models.Authenticated("user-1", ""))
		accountService.On("Profile", mock.Anything, "user-1").Return(&models.Profile{ID: "user-1", FirstName: "Ana"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/profile", nil, sess, nil)
		rr := httptest.NewRecorder()

		handler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var profile models.Profile
		decodeResponse(t, rr, &profile)
		assert.Equal(t, "Ana", profile.FirstName)
	})

	t.Run("Failure - Guest", func(t *testing.T) {
		accountService, handler := setupAccountTest()
		sess, _, _ := testutils.NewTestSession(models.Guest())

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/profile", nil, sess, nil)
		rr := httptest.NewRecorder()

		handler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		resp := decodeResponse(t, rr, nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeNotAuthenticated, resp.Error.Code)
		accountService.AssertNotCalled(t, "Profile", mock.Anything, mock.Anything)
	})
}

func TestUpdateProfileAndBecomeArtist(t *testing.T) {
	t.Run("Success - Update", func(t *testing.T) {
		accountService, handler := setupAccountTest()
		sess, _, _ := testutils.NewTestSession(models.Authenticated("user-1", ""))
		accountService.On("UpdateProfile", mock.Anything, "user-1", mock.MatchedBy(func(req *models.UpdateProfileRequest) bool {
			return req.Location != nil && *req.Location == "Porto" && req.FirstName == nil
		})).Return(&models.Profile{ID: "user-1", Location: "Porto"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPatch, "/api/v1/profile",
			bytes.NewReader([]byte(`{"location":"Porto"}`)), sess, nil)
		rr := httptest.NewRecorder()

		handler.UpdateProfile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		accountService.AssertExpectations(t)
	})

	t.Run("Success - Become artist", func(t *testing.T) {
		accountService, handler := setupAccountTest()
		sess, _, _ := testutils.NewTestSession(models.Authenticated("user-1", ""))
		accountService.On("BecomeArtist", mock.Anything, "user-1").Return(&models.Profile{ID: "user-1", IsArtist: true}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/profile/artist", nil, sess, nil)
		rr := httptest.NewRecorder()

		handler.BecomeArtist().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var profile models.Profile
		decodeResponse(t, rr, &profile)
		assert.True(t, profile.IsArtist)
	})
}
