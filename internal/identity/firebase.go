package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/frameart/storefront/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/option"
)

// AuthClient is the part of the Firebase admin auth client the provider uses.
type AuthClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// FirebaseProvider delegates accounts to Firebase Authentication. Password
// sign-in goes through the Identity Toolkit REST endpoint since the admin SDK
// cannot check passwords.
type FirebaseProvider struct {
	auth     AuthClient
	http     *http.Client
	endpoint string
	apiKey   string
}

func NewFirebaseAuthClient(ctx context.Context, cfg *config.Store) (*auth.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirestoreProject}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase auth: %w", err)
	}

	return client, nil
}

func NewFirebaseProvider(client AuthClient, cfg config.Identity) *FirebaseProvider {
	return NewFirebaseProviderWithHTTP(client, cfg, &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)})
}

func NewFirebaseProviderWithHTTP(client AuthClient, cfg config.Identity, httpClient *http.Client) *FirebaseProvider {
	return &FirebaseProvider{
		auth:     client,
		http:     httpClient,
		endpoint: cfg.SignInEndpoint,
		apiKey:   cfg.FirebaseAPIKey,
	}
}

func (p *FirebaseProvider) SignUp(ctx context.Context, email, password, displayName string) (Principal, error) {
	params := (&auth.UserToCreate{}).
		Email(normalizeEmail(email)).
		Password(password)

	if displayName != "" {
		params = params.DisplayName(displayName)
	}

	user, err := p.auth.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return Principal{}, ErrEmailTaken
		}

		return Principal{}, fmt.Errorf("failed to create firebase user: %w", err)
	}

	return Principal{UserID: user.UID, Email: user.Email}, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken   string `json:"idToken"`
	LocalID   string `json:"localId"`
	Email     string `json:"email"`
	ExpiresIn string `json:"expiresIn"`
}

type toolkitError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *FirebaseProvider) SignIn(ctx context.Context, cred Credential) (Token, Principal, error) {
	body, err := json.Marshal(signInRequest{
		Email:             normalizeEmail(cred.Email),
		Password:          cred.Password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return Token{}, Principal{}, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	endpoint := p.endpoint + "?key=" + url.QueryEscape(p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Token{}, Principal{}, fmt.Errorf("failed to build sign-in request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return Token{}, Principal{}, fmt.Errorf("failed to call identity toolkit: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Token{}, Principal{}, fmt.Errorf("failed to read sign-in response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var failure toolkitError
		_ = json.Unmarshal(raw, &failure)

		return Token{}, Principal{}, toolkitFailure(resp.StatusCode, failure.Error.Message)
	}

	var out signInResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Token{}, Principal{}, fmt.Errorf("failed to decode sign-in response: %w", err)
	}

	expiresIn, _ := strconv.Atoi(out.ExpiresIn)

	return Token{Value: out.IDToken, ExpiresIn: expiresIn}, Principal{UserID: out.LocalID, Email: out.Email}, nil
}

func (p *FirebaseProvider) SignOut(ctx context.Context, token string) error {
	principal, err := p.Verify(ctx, token)
	if err != nil {
		return err
	}

	if err := p.auth.RevokeRefreshTokens(ctx, principal.UserID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	return nil
}

func (p *FirebaseProvider) Verify(ctx context.Context, token string) (Principal, error) {
	verified, err := p.auth.VerifyIDToken(ctx, token)
	if err != nil || strings.TrimSpace(verified.UID) == "" {
		return Principal{}, ErrInvalidToken
	}

	email, _ := verified.Claims["email"].(string)

	return Principal{UserID: verified.UID, Email: email}, nil
}

func toolkitFailure(status int, message string) error {
	// Messages may carry a suffix, e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : ...".
	code, _, _ := strings.Cut(message, " ")

	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "USER_DISABLED":
		return &AttemptError{Err: ErrInvalidCredentials}
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return &AttemptError{Err: ErrTooManyAttempts}
	default:
		return fmt.Errorf("identity toolkit returned status %d: %s", status, message)
	}
}
