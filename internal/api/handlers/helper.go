package handlers

import (
	"net/http"

	"github.com/frameart/storefront/internal/api/middleware"
	"github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	"github.com/frameart/storefront/internal/session"
	"github.com/frameart/storefront/internal/utils/response"
)

// currentSession writes an internal error when the session middleware did
// not run for this route.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Error("Route served without a session")
		response.Error(w, errors.InternalError("Session unavailable"))

		return nil, false
	}

	return sess, true
}

func requireSignedIn(w http.ResponseWriter, r *http.Request, message string) (*session.Session, models.Identity, bool) {
	sess, ok := currentSession(w, r)
	if !ok {
		return nil, models.Identity{}, false
	}

	ident := sess.Manager.CurrentIdentity()
	if !ident.IsAuthenticated() {
		logger.FromContext(r.Context()).Warn("Unauthenticated access attempt")
		response.Error(w, errors.NotAuthenticatedError(message))

		return nil, models.Identity{}, false
	}

	return sess, ident, true
}
