package handlers

import (
	"log/slog"
	"net/http"

	"github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	"github.com/frameart/storefront/internal/utils/response"
)

type SessionResponse struct {
	SessionID string          `json:"sessionId"`
	Identity  models.Identity `json:"identity"`
}

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Current godoc
//
//	@Summary		Get the current session
//	@Description	Returns the session id and the identity the session is in.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	handlers.SessionResponse	"Current session"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/session [get]
func (h *SessionHandler) Current() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, SessionResponse{SessionID: sess.ID, Identity: sess.Manager.CurrentIdentity()})
	}
}

// ContinueAsGuest moves an anonymous session to guest and restores its
// guest cart. Repeating it is a no-op.
//
//	@Summary		Continue as guest
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	handlers.SessionResponse	"Session in guest mode"
//	@Failure		400	{object}	response.ErrorResponse	"Already signed in"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/session/guest [post]
func (h *SessionHandler) ContinueAsGuest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		if sess.Manager.CurrentIdentity().IsAuthenticated() {
			response.Error(w, errors.BadRequestError("Already signed in"))

			return
		}

		if err := sess.Manager.Observe(r.Context(), models.Guest()); err != nil {
			log.Error("Failed to continue as guest", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, SessionResponse{SessionID: sess.ID, Identity: sess.Manager.CurrentIdentity()})
	}
}
