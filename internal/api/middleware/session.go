package middleware

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/identity"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	"github.com/frameart/storefront/internal/session"
	"github.com/frameart/storefront/internal/utils/response"
)

const SessionHeader = "X-Session-ID"

type contextKey string

const sessionContextKey = contextKey("session")

// SessionRegistry is satisfied by *session.Registry.
type SessionRegistry interface {
	Get(ctx context.Context, id string) *session.Session
	Rotate(ctx context.Context, old *session.Session, newID string) (*session.Session, error)
}

type SessionMiddleware struct {
	registry     SessionRegistry
	provider     identity.Provider
	ids          *session.IDs
	cookieName   string
	secureCookie bool
}

func NewSessionMiddleware(registry SessionRegistry, provider identity.Provider, ids *session.IDs, cookieName string, secureCookie bool) *SessionMiddleware {
	return &SessionMiddleware{
		registry:     registry,
		provider:     provider,
		ids:          ids,
		cookieName:   cookieName,
		secureCookie: secureCookie,
	}
}

// Handle resolves the browser session, holds its lock for the whole request
// and feeds the identity proven by the bearer token to the session manager.
// A request without a token leaves the session identity unchanged.
//
// Only ids minted here are honoured; anything else gets a new session. The
// id is rotated whenever a token would sign the session in, so an id known
// before sign-in never carries the signed-in identity.
func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := m.sessionID(r)
		if !m.ids.Valid(id) {
			if id != "" {
				logger.FromContext(r.Context()).Warn("Ignoring unrecognized session id")
			}

			id = m.ids.Mint()
			m.issue(w, id)
		}

		w.Header().Set(SessionHeader, id)

		log := logger.FromContext(r.Context()).With(slog.String("session_id", id))
		ctx := logger.WithLogger(r.Context(), log)

		sess := m.registry.Get(ctx, id)
		sess.Lock()

		defer func() { sess.Unlock() }()

		if token := identity.BearerToken(r); token != "" {
			principal, err := m.provider.Verify(ctx, token)
			if err != nil {
				if !stderrors.Is(err, identity.ErrInvalidToken) {
					log.Error("Token verification unavailable", slog.Any("error", err))
					response.Error(w, errors.ThirdPartyError("Failed to verify session").WithError(err))

					return
				}

				log.Warn("Rejected bearer token", slog.Any("error", err))

				if sess.Manager.CurrentIdentity().IsAuthenticated() {
					if err := sess.Manager.Observe(ctx, models.Anonymous()); err != nil {
						log.Warn("Sign-out after token rejection failed", slog.Any("error", err))
					}
				}

				response.Error(w, errors.UnauthorizedError("Invalid or expired token"))

				return
			}

			signedIn := models.Authenticated(principal.UserID, principal.Email)

			if !sess.Manager.CurrentIdentity().Equal(signedIn) {
				fresh, err := m.registry.Rotate(ctx, sess, m.ids.Mint())
				if err != nil {
					log.Error("Session rotation failed", slog.Any("error", err))
					response.Error(w, errors.InternalError("Failed to start session").WithError(err))

					return
				}

				sess.Unlock()
				fresh.Lock()
				sess = fresh

				m.issue(w, sess.ID)
				w.Header().Set(SessionHeader, sess.ID)

				log = logger.FromContext(r.Context()).With(slog.String("session_id", sess.ID))
				ctx = logger.WithLogger(r.Context(), log)
			}

			if err := sess.Manager.Observe(ctx, signedIn); err != nil {
				log.Error("Sign-in transition failed", slog.Any("error", err))
				response.Error(w, err)

				return
			}
		}

		if current := sess.Manager.CurrentIdentity(); current.IsAuthenticated() {
			log = log.With(slog.String("user_id", current.UserID))
			ctx = logger.WithLogger(ctx, log)
		}

		next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
	})
}

func (m *SessionMiddleware) issue(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionMiddleware) sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}

	if c, err := r.Cookie(m.cookieName); err == nil {
		return strings.TrimSpace(c.Value)
	}

	return ""
}

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*session.Session)

	return s, ok && s != nil
}
