package identity_test

import (
	"testing"
	"time"

	"github.com/frameart/storefront/internal/config"
	"github.com/frameart/storefront/internal/identity"
	repository "github.com/frameart/storefront/internal/repositories"
	"github.com/frameart/storefront/internal/repositories/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLocalProvider(t *testing.T) (*identity.LocalProvider, *mocks.RateLimitRepository, *mocks.TokenDenylist) {
	t.Helper()

	limiter := &mocks.RateLimitRepository{}
	denylist := &mocks.TokenDenylist{}
	provider := identity.NewLocalProvider(repository.NewMemoryDocumentStore(), limiter, denylist, config.Security{
		JWTKey:         "test-secret",
		JWTExpiryHours: 1,
	})

	t.Cleanup(func() {
		limiter.AssertExpectations(t)
		denylist.AssertExpectations(t)
	})

	return provider, limiter, denylist
}

func TestLocalSignUp(t *testing.T) {
	t.Run("Success - Creates credentials", func(t *testing.T) {
		provider, _, _ := newLocalProvider(t)

		principal, err := provider.SignUp(t.Context(), " Ana@Example.com ", "secret1", "Ana Lima")

		require.NoError(t, err)
		assert.NotEmpty(t, principal.UserID)
		assert.Equal(t, "ana@example.com", principal.Email)
	})

	t.Run("Failure - Email taken", func(t *testing.T) {
		provider, _, _ := newLocalProvider(t)
		_, err := provider.SignUp(t.Context(), "ana@example.com", "secret1", "Ana Lima")
		require.NoError(t, err)

		_, err = provider.SignUp(t.Context(), "ANA@example.com", "other-secret", "Someone Else")

		require.ErrorIs(t, err, identity.ErrEmailTaken)
	})
}

func TestLocalSignIn(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Issues a verifiable token", func(t *testing.T) {
		// Arrange
		provider, limiter, denylist := newLocalProvider(t)
		created, err := provider.SignUp(ctx, "ana@example.com", "secret1", "Ana Lima")
		require.NoError(t, err)

		limiter.On("CheckLoginRateLimit", mock.Anything, "ana@example.com").Return(true, 4, 0, nil).Once()
		denylist.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()

		// Act
		token, principal, err := provider.SignIn(ctx, identity.Credential{Email: "Ana@example.com", Password: "secret1"})
		require.NoError(t, err)
		verified, verifyErr := provider.Verify(ctx, token.Value)

		// Assert
		assert.Equal(t, created, principal)
		assert.Equal(t, 3600, token.ExpiresIn)
		require.NoError(t, verifyErr)
		assert.Equal(t, created, verified)
	})

	t.Run("Failure - Wrong password reports remaining tries", func(t *testing.T) {
		provider, limiter, _ := newLocalProvider(t)
		_, err := provider.SignUp(ctx, "ana@example.com", "secret1", "Ana Lima")
		require.NoError(t, err)
		limiter.On("CheckLoginRateLimit", mock.Anything, "ana@example.com").Return(true, 2, 0, nil).Once()

		_, _, err = provider.SignIn(ctx, identity.Credential{Email: "ana@example.com", Password: "wrong"})

		require.ErrorIs(t, err, identity.ErrInvalidCredentials)

		var attempt *identity.AttemptError
		require.ErrorAs(t, err, &attempt)
		assert.Equal(t, 2, attempt.Remaining)
	})

	t.Run("Failure - Unknown email", func(t *testing.T) {
		provider, limiter, _ := newLocalProvider(t)
		limiter.On("CheckLoginRateLimit", mock.Anything, "nobody@example.com").Return(true, 4, 0, nil).Once()

		_, _, err := provider.SignIn(ctx, identity.Credential{Email: "nobody@example.com", Password: "secret1"})

		require.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		provider, limiter, _ := newLocalProvider(t)
		limiter.On("CheckLoginRateLimit", mock.Anything, "ana@example.com").Return(false, 0, 30, nil).Once()

		_, _, err := provider.SignIn(ctx, identity.Credential{Email: "ana@example.com", Password: "secret1"})

		require.ErrorIs(t, err, identity.ErrTooManyAttempts)

		var attempt *identity.AttemptError
		require.ErrorAs(t, err, &attempt)
		assert.Equal(t, 30, attempt.RetryAfter)
	})
}

func TestLocalSignOut(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Revoked token no longer verifies", func(t *testing.T) {
		// Arrange
		provider, limiter, denylist := newLocalProvider(t)
		_, err := provider.SignUp(ctx, "ana@example.com", "secret1", "Ana Lima")
		require.NoError(t, err)
		limiter.On("CheckLoginRateLimit", mock.Anything, "ana@example.com").Return(true, 4, 0, nil).Once()

		token, _, err := provider.SignIn(ctx, identity.Credential{Email: "ana@example.com", Password: "secret1"})
		require.NoError(t, err)

		denylist.On("Revoke", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(ttl time.Duration) bool {
			return ttl > 59*time.Minute && ttl <= time.Hour
		})).Return(nil).Once()
		denylist.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(true, nil).Once()

		// Act
		signOutErr := provider.SignOut(ctx, token.Value)
		_, verifyErr := provider.Verify(ctx, token.Value)

		// Assert
		require.NoError(t, signOutErr)
		require.ErrorIs(t, verifyErr, identity.ErrInvalidToken)
	})

	t.Run("Failure - Garbage token", func(t *testing.T) {
		provider, _, _ := newLocalProvider(t)

		err := provider.SignOut(ctx, "not-a-jwt")

		require.ErrorIs(t, err, identity.ErrInvalidToken)
	})
}
