package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/metrics"
	"github.com/frameart/storefront/internal/models"
	repository "github.com/frameart/storefront/internal/repositories"
	"github.com/frameart/storefront/internal/snapshot"
)

const SignInToFavoriteMessage = "Please sign in to save favourites"

type FavoritesService interface {
	Favorites() []models.FavoriteEntry
	IsFavorited(artworkID string) bool
	ToggleFavorite(ctx context.Context, artwork map[string]any) (bool, error)
	Refresh(ctx context.Context) ([]models.FavoriteEntry, error)
	OnSignIn(ctx context.Context, userID string) error
	OnSignOut(ctx context.Context) error
	OnGuest(ctx context.Context) error
}

// FavoritesEngine caches the signed-in user's favorites for lookups that
// must never fail. Toggles always re-read the stored list first.
type FavoritesEngine struct {
	mu        sync.RWMutex
	profiles  repository.ProfileRepository
	artworks  repository.ArtworkRepository
	userID    string
	favorites []models.FavoriteEntry
	now       func() time.Time
}

func NewFavoritesEngine(profiles repository.ProfileRepository, artworks repository.ArtworkRepository) *FavoritesEngine {
	return &FavoritesEngine{
		profiles:  profiles,
		artworks:  artworks,
		favorites: []models.FavoriteEntry{},
		now:       time.Now,
	}
}

func (e *FavoritesEngine) Favorites() []models.FavoriteEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return slices.Clone(e.favorites)
}

// IsFavorited is false for sessions that are not signed in.
func (e *FavoritesEngine) IsFavorited(artworkID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.userID == "" {
		return false
	}

	return indexOfFavorite(e.favorites, artworkID) >= 0
}

// ToggleFavorite returns true when the artwork was added and false when it
// was removed. The result comes from the decision written to the store.
func (e *FavoritesEngine) ToggleFavorite(ctx context.Context, artwork map[string]any) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.userID == "" {
		return false, errors.NotAuthenticatedError(SignInToFavoriteMessage)
	}

	s := snapshot.Normalize(artwork)
	if s.ID == "" {
		return false, errors.ValidationError("Artwork id is required")
	}

	log := logger.FromContext(ctx).With(slog.String("user_id", e.userID), slog.String("artwork_id", s.ID))

	current, err := e.profiles.GetFavorites(ctx, e.userID)
	if err != nil {
		metrics.FavoriteToggles.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Error("Failed to read favorites", slog.Any("error", err))

		return false, errors.FavoritesPersistFailure("Failed to update favorites").WithError(err)
	}

	next := slices.Clone(current)
	i := indexOfFavorite(next, s.ID)
	added := i < 0

	if added {
		next = append(next, snapshot.FavoriteFromSnapshot(s, e.now()))
	} else {
		next = slices.Delete(next, i, i+1)
	}

	if err := e.profiles.SaveFavorites(ctx, e.userID, next); err != nil {
		metrics.FavoriteToggles.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Error("Failed to save favorites", slog.Any("error", err))

		return false, errors.FavoritesPersistFailure("Failed to update favorites").WithError(err)
	}

	e.favorites = next

	result := "removed"
	if added {
		result = "added"
	}

	metrics.FavoriteToggles.WithLabelValues(result).Inc()
	log.Info("Favorite toggled", slog.Bool("added", added))

	return added, nil
}

// Refresh re-reads the favorites and copies current display fields from
// live artist artworks. Entries for catalog items are left as stored.
func (e *FavoritesEngine) Refresh(ctx context.Context) ([]models.FavoriteEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.userID == "" {
		return nil, errors.NotAuthenticatedError("Please sign in to view favourites")
	}

	entries, err := e.profiles.GetFavorites(ctx, e.userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load favorites").WithError(err)
	}

	for i := range entries {
		artwork, err := e.artworks.Get(ctx, entries[i].ArtworkID)
		if err != nil {
			if !stderrors.Is(err, repository.ErrDocumentNotFound) {
				logger.FromContext(ctx).Warn("Failed to refresh favorite",
					slog.String("artwork_id", entries[i].ArtworkID), slog.Any("error", err))
			}

			continue
		}

		applyArtworkDisplay(&entries[i], artwork)
	}

	e.favorites = entries

	return slices.Clone(entries), nil
}

// OnSignIn loads favorites best-effort. A failed load leaves the cache
// empty and does not block the sign-in.
func (e *FavoritesEngine) OnSignIn(ctx context.Context, userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.userID = userID
	e.favorites = []models.FavoriteEntry{}

	entries, err := e.profiles.GetFavorites(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to load favorites on sign-in", slog.String("user_id", userID), slog.Any("error", err))

		return nil
	}

	e.favorites = entries

	return nil
}

func (e *FavoritesEngine) OnSignOut(_ context.Context) error {
	e.reset()

	return nil
}

func (e *FavoritesEngine) OnGuest(_ context.Context) error {
	e.reset()

	return nil
}

func (e *FavoritesEngine) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.userID = ""
	e.favorites = []models.FavoriteEntry{}
}

func applyArtworkDisplay(entry *models.FavoriteEntry, artwork *models.ArtworkRecord) {
	if artwork.Title != "" {
		entry.Title = artwork.Title
	}

	if artwork.ImageURL != "" {
		entry.ImageURL = artwork.ImageURL
	}

	if artwork.ArtistName != "" {
		entry.Artist = artwork.ArtistName
	}

	entry.Price = artwork.Price
	entry.Size = artwork.Size
}

func indexOfFavorite(entries []models.FavoriteEntry, artworkID string) int {
	return slices.IndexFunc(entries, func(f models.FavoriteEntry) bool {
		return f.ArtworkID == artworkID
	})
}
