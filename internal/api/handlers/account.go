package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/identity"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	service "github.com/frameart/storefront/internal/services"
	"github.com/frameart/storefront/internal/utils"
	"github.com/frameart/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AccountHandler struct {
	accountService service.AccountService
	validator      *validator.Validate
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService, validator: validator.New()}
}

// SignUp godoc
//
//	@Summary		Create an account
//	@Description	Registers a user with the configured identity provider and creates the profile document.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			account	body	models.SignUpRequest	true	"Account details"
//	@Success		201	{object}	models.Profile	"Account created"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		409	{object}	response.ErrorResponse	"Email already registered"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Router			/auth/signup [post]
func (h *AccountHandler) SignUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req models.SignUpRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		profile, err := h.accountService.SignUp(r.Context(), &req)
		if err != nil {
			log.Warn("Sign-up failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		log.Info("User signed up", slog.String("user_id", profile.ID))
		response.Success(w, http.StatusCreated, profile)
	}
}

// Login runs the sign-in transition for this session once the credentials
// are accepted, so the guest cart is merged before the response is sent.
//
//	@Summary		Sign in
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body	models.LoginRequest	true	"Email and password"
//	@Success		200	{object}	models.LoginResponse	"Signed in"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		401	{object}	response.ErrorResponse	"Invalid credentials"
//	@Failure		429	{object}	response.ErrorResponse	"Too many attempts"
//	@Failure		503	{object}	response.ErrorResponse	"Cart merge failed"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Router			/auth/login [post]
func (h *AccountHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.accountService.SignIn(r.Context(), &req)
		if err != nil {
			log.Error("Sign-in failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		if !resp.Success {
			status, code := http.StatusUnauthorized, errors.ErrCodeUnauthorized
			if resp.RetryAfter > 0 {
				status, code = http.StatusTooManyRequests, errors.ErrCodeTooManyRequests
				w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
			}

			log.Warn("Login rejected", slog.Int("remaining_tries", resp.RemainingTries))
			response.WriteJson(w, status, response.APIResponse{
				Success: false,
				Data:    resp,
				Error:   &response.ErrorResponse{Code: code, Message: resp.Message},
			})

			return
		}

		if err := sess.Manager.Observe(r.Context(), resp.Identity); err != nil {
			log.Error("Signed in but the session transition failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		log.Info("User logged in", slog.String("user_id", resp.Identity.UserID))
		response.Success(w, http.StatusOK, resp)
	}
}

// Logout godoc
//
//	@Summary		Sign out
//	@Description	Revokes the bearer token when present and returns the session to anonymous.
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	handlers.SessionResponse	"Signed out"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/auth/logout [post]
func (h *AccountHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		if err := h.accountService.SignOut(r.Context(), identity.BearerToken(r)); err != nil {
			log.Warn("Token revocation failed", slog.Any("error", err))
		}

		if err := sess.Manager.Observe(r.Context(), models.Anonymous()); err != nil {
			response.Error(w, err)

			return
		}

		log.Info("User logged out")
		response.Success(w, http.StatusOK, SessionResponse{SessionID: sess.ID, Identity: sess.Manager.CurrentIdentity()})
	}
}

// Profile godoc
//
//	@Summary		Get the signed-in profile
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	models.Profile	"Profile"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		404	{object}	response.ErrorResponse	"Profile not found"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/profile [get]
func (h *AccountHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ident, ok := requireSignedIn(w, r, "Please sign in to view your profile")
		if !ok {
			return
		}

		ctx, cancel := utils.WithDBTimeout(r.Context())
		defer cancel()

		profile, err := h.accountService.Profile(ctx, ident.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Warn("Profile lookup failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, profile)
	}
}

// UpdateProfile godoc
//
//	@Summary		Update the signed-in profile
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			profile	body	models.UpdateProfileRequest	true	"Fields to change"
//	@Success		200	{object}	models.Profile	"Updated profile"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/profile [patch]
func (h *AccountHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		_, ident, ok := requireSignedIn(w, r, "Please sign in to edit your profile")
		if !ok {
			return
		}

		var req models.UpdateProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		profile, err := h.accountService.UpdateProfile(r.Context(), ident.UserID, &req)
		if err != nil {
			log.Error("Profile update failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, profile)
	}
}

// BecomeArtist godoc
//
//	@Summary		Enable the artist role
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	models.Profile	"Profile with the artist role"
//	@Failure		401	{object}	response.ErrorResponse	"Sign-in required"
//	@Failure		500	{object}	response.ErrorResponse	"Session unavailable"
//	@Security		SessionID
//	@Security		BearerAuth
//	@Router			/profile/artist [post]
func (h *AccountHandler) BecomeArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ident, ok := requireSignedIn(w, r, "Please sign in to become an artist")
		if !ok {
			return
		}

		profile, err := h.accountService.BecomeArtist(r.Context(), ident.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Artist upgrade failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, profile)
	}
}
