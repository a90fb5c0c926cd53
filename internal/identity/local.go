package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frameart/storefront/internal/config"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	repository "github.com/frameart/storefront/internal/repositories"
	"github.com/frameart/storefront/internal/snapshot"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider keeps bcrypt credentials in the document store and issues
// HS256 tokens. Sign-out puts the token id on the denylist until it expires.
type LocalProvider struct {
	docs     repository.DocumentStore
	limiter  repository.RateLimitRepository
	denylist repository.TokenDenylist
	jwtKey   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewLocalProvider(docs repository.DocumentStore, limiter repository.RateLimitRepository, denylist repository.TokenDenylist, cfg config.Security) *LocalProvider {
	hours := cfg.JWTExpiryHours
	if hours <= 0 {
		hours = 24
	}

	return &LocalProvider{
		docs:     docs,
		limiter:  limiter,
		denylist: denylist,
		jwtKey:   []byte(cfg.JWTKey),
		ttl:      time.Duration(hours) * time.Hour,
		now:      time.Now,
	}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password, displayName string) (Principal, error) {
	email = normalizeEmail(email)

	existing, err := p.docs.QueryWhere(ctx, repository.CredentialsCollection, "email", email)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to look up credentials: %w", err)
	}

	if len(existing) > 0 {
		return Principal{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewString()

	err = p.docs.SetDocument(ctx, repository.CredentialsCollection, userID, repository.Document{
		"email":        email,
		"passwordHash": string(hash),
		"displayName":  displayName,
		"createdAt":    p.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return Principal{}, fmt.Errorf("failed to store credentials: %w", err)
	}

	return Principal{UserID: userID, Email: email}, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, cred Credential) (Token, Principal, error) {
	log := logger.FromContext(ctx)
	email := normalizeEmail(cred.Email)

	allowed, remaining, retryAfter, err := p.limiter.CheckLoginRateLimit(ctx, email)
	if err != nil {
		return Token{}, Principal{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	if !allowed {
		return Token{}, Principal{}, &AttemptError{Err: ErrTooManyAttempts, RetryAfter: retryAfter}
	}

	found, err := p.docs.QueryWhere(ctx, repository.CredentialsCollection, "email", email)
	if err != nil {
		return Token{}, Principal{}, fmt.Errorf("failed to look up credentials: %w", err)
	}

	if len(found) == 0 {
		return Token{}, Principal{}, &AttemptError{Err: ErrInvalidCredentials, Remaining: remaining}
	}

	hash := snapshot.Text(found[0].Fields, "passwordHash")
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(cred.Password)) != nil {
		log.Warn("Password mismatch", slog.String("user_id", found[0].ID))

		return Token{}, Principal{}, &AttemptError{Err: ErrInvalidCredentials, Remaining: remaining}
	}

	principal := Principal{UserID: found[0].ID, Email: email}
	now := p.now()

	claims := &models.Claims{
		UserID: principal.UserID,
		Email:  principal.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principal.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.jwtKey)
	if err != nil {
		return Token{}, Principal{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Token{Value: signed, ExpiresIn: int(p.ttl.Seconds())}, principal, nil
}

func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	claims, err := p.parse(token)
	if err != nil {
		return err
	}

	return p.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time.Sub(p.now()))
}

func (p *LocalProvider) Verify(ctx context.Context, token string) (Principal, error) {
	claims, err := p.parse(token)
	if err != nil {
		return Principal{}, err
	}

	revoked, err := p.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Principal{}, err
	}

	if revoked {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: claims.UserID, Email: claims.Email}, nil
}

func (p *LocalProvider) parse(token string) (*models.Claims, error) {
	claims := &models.Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return p.jwtKey, nil
	}, jwt.WithTimeFunc(p.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid || claims.UserID == "" || claims.ID == "" {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	return claims, nil
}
