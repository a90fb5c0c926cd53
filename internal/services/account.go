package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/identity"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	repository "github.com/frameart/storefront/internal/repositories"
)

type AccountService interface {
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.Profile, error)
	SignIn(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	SignOut(ctx context.Context, token string) error
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error)
	BecomeArtist(ctx context.Context, userID string) (*models.Profile, error)
}

type accountService struct {
	provider identity.Provider
	profiles repository.ProfileRepository
	now      func() time.Time
}

func NewAccountService(provider identity.Provider, profiles repository.ProfileRepository) AccountService {
	return &accountService{provider: provider, profiles: profiles, now: time.Now}
}

func (s *accountService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	principal, err := s.provider.SignUp(ctx, req.Email, req.Password, strings.TrimSpace(firstName+" "+lastName))
	if err != nil {
		if stderrors.Is(err, identity.ErrEmailTaken) {
			return nil, errors.DuplicateEntryError("Email already registered")
		}

		return nil, errors.ThirdPartyError("Failed to create account").WithError(err)
	}

	profile := &models.Profile{
		ID:        principal.UserID,
		Email:     principal.Email,
		FirstName: firstName,
		LastName:  lastName,
		IsArtist:  req.IsArtist,
		CreatedAt: s.now().UTC(),
		Favorites: []models.FavoriteEntry{},
		Purchases: []models.Purchase{},
		Cart:      []models.CartLine{},
	}

	if profile.IsArtist {
		profile.Artworks = []string{}
	}

	if err := s.profiles.CreateProfile(ctx, profile); err != nil {
		log.Error("Account created without profile", slog.String("user_id", principal.UserID), slog.Any("error", err))

		return nil, errors.DatabaseError("Failed to create profile").WithError(err)
	}

	log.Info("Account created", slog.String("user_id", principal.UserID), slog.Bool("is_artist", profile.IsArtist))

	return profile, nil
}

// SignIn reports rejected credentials in the response rather than as an
// error so the caller can show remaining tries.
func (s *accountService) SignIn(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	token, principal, err := s.provider.SignIn(ctx, identity.Credential{Email: req.Email, Password: req.Password})
	if err != nil {
		var attempt *identity.AttemptError
		if !stderrors.As(err, &attempt) {
			return nil, errors.ThirdPartyError("Sign-in failed").WithError(err)
		}

		resp := &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: attempt.Remaining,
			RetryAfter:     attempt.RetryAfter,
			Identity:       models.Anonymous(),
		}

		if stderrors.Is(err, identity.ErrTooManyAttempts) {
			resp.Message = "Too many login attempts. Please try again later."
		}

		return resp, nil
	}

	profile, err := s.profiles.GetProfile(ctx, principal.UserID)
	if err != nil {
		log.Warn("Signed in without a readable profile", slog.String("user_id", principal.UserID), slog.Any("error", err))
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     token.Value,
		ExpiresIn: token.ExpiresIn,
		Identity:  models.Authenticated(principal.UserID, principal.Email),
		Profile:   profile,
	}, nil
}

func (s *accountService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.provider.SignOut(ctx, token); err != nil {
		if stderrors.Is(err, identity.ErrInvalidToken) {
			return nil
		}

		return errors.ThirdPartyError("Sign-out failed").WithError(err)
	}

	return nil
}

func (s *accountService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if stderrors.Is(err, repository.ErrDocumentNotFound) {
			return nil, errors.NotFoundError("Profile not found")
		}

		return nil, errors.DatabaseError("Failed to load profile").WithError(err)
	}

	return profile, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := repository.Document{}

	if req.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*req.FirstName)
		fields["firstName"] = profile.FirstName
	}

	if req.LastName != nil {
		profile.LastName = strings.TrimSpace(*req.LastName)
		fields["lastName"] = profile.LastName
	}

	if req.Location != nil {
		profile.Location = strings.TrimSpace(*req.Location)
		fields["location"] = profile.Location
	}

	if req.ProfilePhoto != nil {
		profile.ProfilePhoto = strings.TrimSpace(*req.ProfilePhoto)
		fields["profilePhoto"] = profile.ProfilePhoto
	}

	// artistProfile is written as a whole.
	if req.Bio != nil || req.Statement != nil {
		if req.Bio != nil {
			profile.ArtistProfile.Bio = strings.TrimSpace(*req.Bio)
		}

		if req.Statement != nil {
			profile.ArtistProfile.Statement = strings.TrimSpace(*req.Statement)
		}

		profile.ArtistProfile.IsComplete = profile.ArtistProfile.Bio != "" && profile.ArtistProfile.Statement != ""
		fields["artistProfile"] = map[string]any{
			"bio":        profile.ArtistProfile.Bio,
			"statement":  profile.ArtistProfile.Statement,
			"isComplete": profile.ArtistProfile.IsComplete,
		}
	}

	if err := s.profiles.UpdateProfile(ctx, userID, fields); err != nil {
		return nil, errors.DatabaseError("Failed to update profile").WithError(err)
	}

	return profile, nil
}

func (s *accountService) BecomeArtist(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.IsArtist {
		return profile, nil
	}

	profile.IsArtist = true
	if profile.Artworks == nil {
		profile.Artworks = []string{}
	}

	artworks := make([]any, 0, len(profile.Artworks))
	for _, id := range profile.Artworks {
		artworks = append(artworks, id)
	}

	if err := s.profiles.UpdateProfile(ctx, userID, repository.Document{"isArtist": true, "artworks": artworks}); err != nil {
		return nil, errors.DatabaseError("Failed to update profile").WithError(err)
	}

	logger.FromContext(ctx).Info("Profile upgraded to artist", slog.String("user_id", userID))

	return profile, nil
}
