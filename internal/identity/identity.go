// Package identity signs users in and turns bearer tokens back into the
// principal they were issued for.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Principal struct {
	UserID string
	Email  string
}

type Credential struct {
	Email    string
	Password string
}

type Token struct {
	Value     string
	ExpiresIn int
}

// AttemptError is returned for a rejected sign-in. Remaining and RetryAfter
// are zero when the provider does not track attempts.
type AttemptError struct {
	Err        error
	Remaining  int
	RetryAfter int
}

func (e *AttemptError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%v: retry after %ds", e.Err, e.RetryAfter)
	}

	return e.Err.Error()
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

type Provider interface {
	SignUp(ctx context.Context, email, password, displayName string) (Principal, error)
	SignIn(ctx context.Context, cred Credential) (Token, Principal, error)
	SignOut(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (Principal, error)
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when there is none.
func BearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
