package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/events"
	"github.com/frameart/storefront/internal/imaging"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/metrics"
	"github.com/frameart/storefront/internal/models"
	repository "github.com/frameart/storefront/internal/repositories"
	"github.com/frameart/storefront/internal/snapshot"
)

// MaxDocumentBytes is the largest artwork document the profile store accepts.
const MaxDocumentBytes = 1_000_000

const fanOutIndexKey = "_index"

type PublicationService interface {
	CreateDraft(ctx context.Context, ownerID string, req *models.CreateArtworkRequest) (*models.ArtworkRecord, error)
	Get(ctx context.Context, ownerID, artworkID string) (*models.ArtworkRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.ArtworkRecord, error)
	Update(ctx context.Context, ownerID, artworkID string, req *models.UpdateArtworkRequest) (*models.ArtworkMutationResult, error)
	Publish(ctx context.Context, ownerID, artworkID string) (*models.ArtworkRecord, error)
	Delete(ctx context.Context, ownerID, artworkID string) (*models.ArtworkMutationResult, error)
}

type publicationService struct {
	profiles       repository.ProfileRepository
	artworks       repository.ArtworkRepository
	favoritesIndex repository.ReferenceIndex
	cartIndex      repository.ReferenceIndex
	publisher      events.Publisher
	now            func() time.Time
}

func NewPublicationService(
	profiles repository.ProfileRepository,
	artworks repository.ArtworkRepository,
	favoritesIndex repository.ReferenceIndex,
	cartIndex repository.ReferenceIndex,
	publisher events.Publisher,
) PublicationService {
	return &publicationService{
		profiles:       profiles,
		artworks:       artworks,
		favoritesIndex: favoritesIndex,
		cartIndex:      cartIndex,
		publisher:      publisher,
		now:            time.Now,
	}
}

func (s *publicationService) CreateDraft(ctx context.Context, ownerID string, req *models.CreateArtworkRequest) (*models.ArtworkRecord, error) {
	log := logger.FromContext(ctx).With(slog.String("user_id", ownerID))

	profile, err := s.profiles.GetProfile(ctx, ownerID)
	if err != nil {
		if stderrors.Is(err, repository.ErrDocumentNotFound) {
			return nil, errors.ForbiddenError("Only artists can create artworks")
		}

		return nil, errors.DatabaseError("Failed to load profile").WithError(err)
	}

	if !profile.IsArtist {
		return nil, errors.ForbiddenError("Only artists can create artworks")
	}

	imageURL, err := imaging.Normalize(strings.TrimSpace(req.ImageURL))
	if err != nil {
		return nil, errors.ValidationError("Invalid image").WithError(err)
	}

	artistName := profile.DisplayName()
	if artistName == "" {
		artistName = snapshot.DefaultArtist
	}

	now := s.now().UTC()
	artwork := &models.ArtworkRecord{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       snapshot.CoerceFloat(req.Price),
		Size:        models.Dimensions{Width: max(req.Width, 0), Height: max(req.Height, 0)},
		Tags:        snapshot.NormalizeTags(req.Tags),
		ImageURL:    imageURL,
		ArtistName:  artistName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := checkDocumentSize(artwork.ToFields()); err != nil {
		return nil, err
	}

	if err := s.artworks.Create(ctx, artwork); err != nil {
		log.Error("Failed to create artwork", slog.Any("error", err))

		return nil, errors.DatabaseError("Failed to create artwork").WithError(err)
	}

	ids := append(slices.Clone(profile.Artworks), artwork.ID)
	if err := s.profiles.SetArtworkIDs(ctx, ownerID, ids); err != nil {
		log.Warn("Failed to record artwork on artist profile", slog.String("artwork_id", artwork.ID), slog.Any("error", err))
	}

	log.Info("Artwork draft created", slog.String("artwork_id", artwork.ID))

	return artwork, nil
}

func (s *publicationService) Get(ctx context.Context, ownerID, artworkID string) (*models.ArtworkRecord, error) {
	artwork, err := s.artworks.Get(ctx, artworkID)
	if err != nil {
		if stderrors.Is(err, repository.ErrDocumentNotFound) {
			return nil, errors.ArtworkNotFoundError("Artwork not found")
		}

		return nil, errors.DatabaseError("Failed to load artwork").WithError(err)
	}

	if artwork.OwnerID != ownerID {
		return nil, errors.ForbiddenError("You can only manage your own artworks")
	}

	return artwork, nil
}

func (s *publicationService) ListByOwner(ctx context.Context, ownerID string) ([]*models.ArtworkRecord, error) {
	artworks, err := s.artworks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list artworks").WithError(err)
	}

	return artworks, nil
}

// Update writes only the fields present in req. Display changes are then
// copied into every favorites entry for the artwork; a failure for one user
// is reported and does not undo the update.
func (s *publicationService) Update(ctx context.Context, ownerID, artworkID string, req *models.UpdateArtworkRequest) (*models.ArtworkMutationResult, error) {
	artwork, err := s.Get(ctx, ownerID, artworkID)
	if err != nil {
		return nil, err
	}

	patch := repository.Document{}

	if req.Title != nil {
		artwork.Title = strings.TrimSpace(*req.Title)
		patch["title"] = artwork.Title
	}

	if req.Description != nil {
		artwork.Description = strings.TrimSpace(*req.Description)
		patch["description"] = artwork.Description
	}

	if req.Price != nil {
		artwork.Price = snapshot.CoerceFloat(*req.Price)
		patch["price"] = artwork.Price
	}

	if req.Width != nil || req.Height != nil {
		if req.Width != nil {
			artwork.Size.Width = max(*req.Width, 0)
		}

		if req.Height != nil {
			artwork.Size.Height = max(*req.Height, 0)
		}

		patch["size"] = artwork.Size.ToFields()
	}

	if req.Tags != nil {
		artwork.Tags = snapshot.NormalizeTags(*req.Tags)
		patch["tags"] = models.TagsToFields(artwork.Tags)
	}

	if req.ImageURL != nil {
		imageURL, err := imaging.Normalize(strings.TrimSpace(*req.ImageURL))
		if err != nil {
			return nil, errors.ValidationError("Invalid image").WithError(err)
		}

		artwork.ImageURL = imageURL
		patch["imageUrl"] = imageURL
	}

	if len(patch) == 0 {
		return &models.ArtworkMutationResult{
			Artwork:   artwork,
			Favorites: models.FanOutReport{ArtworkID: artworkID, Updated: []string{}},
		}, nil
	}

	artwork.UpdatedAt = s.now().UTC()
	patch["updatedAt"] = artwork.UpdatedAt.Format(time.RFC3339)

	if artwork.IsPublished {
		for k, v := range publicFields(artwork) {
			patch[k] = v
		}
	}

	if err := checkDocumentSize(mergedFields(artwork)); err != nil {
		return nil, err
	}

	if err := s.artworks.Update(ctx, artworkID, patch); err != nil {
		if stderrors.Is(err, repository.ErrDocumentNotFound) {
			return nil, errors.ArtworkNotFoundError("Artwork not found")
		}

		return nil, errors.DatabaseError("Failed to update artwork").WithError(err)
	}

	report := s.fanOutFavorites(ctx, artworkID, func(entries []models.FavoriteEntry) ([]models.FavoriteEntry, bool) {
		changed := false

		for i := range entries {
			if entries[i].ArtworkID == artworkID {
				applyArtworkDisplay(&entries[i], artwork)
				changed = true
			}
		}

		return entries, changed
	})

	s.publish(ctx, events.New(events.TypeArtworkUpdated, artworkID, ownerID, patch))

	return &models.ArtworkMutationResult{Artwork: artwork, Favorites: report}, nil
}

// Publish is one-way. Publishing an already published artwork returns it
// unchanged.
func (s *publicationService) Publish(ctx context.Context, ownerID, artworkID string) (*models.ArtworkRecord, error) {
	artwork, err := s.Get(ctx, ownerID, artworkID)
	if err != nil {
		return nil, err
	}

	if artwork.IsPublished {
		return artwork, nil
	}

	log := logger.FromContext(ctx).With(slog.String("artwork_id", artworkID))

	if profile, err := s.profiles.GetProfile(ctx, ownerID); err != nil {
		log.Warn("Publishing without artist profile details", slog.Any("error", err))
	} else {
		if name := profile.DisplayName(); name != "" {
			artwork.ArtistName = name
		}

		artwork.ArtistLocation = profile.Location
		artwork.ArtistPhoto = profile.ProfilePhoto
	}

	if artwork.ArtistName == "" {
		artwork.ArtistName = snapshot.DefaultArtist
	}

	now := s.now().UTC()
	artwork.IsPublished = true
	artwork.PublishedAt = &now
	artwork.UpdatedAt = now
	artwork.ThumbURL = artwork.ImageURL

	fields := publicFields(artwork)
	fields["artistName"] = artwork.ArtistName
	fields["isPublished"] = true
	fields["publishedAt"] = now.Format(time.RFC3339)
	fields["updatedAt"] = now.Format(time.RFC3339)

	if err := checkDocumentSize(mergedFields(artwork)); err != nil {
		return nil, err
	}

	if err := s.artworks.Update(ctx, artworkID, fields); err != nil {
		if stderrors.Is(err, repository.ErrDocumentNotFound) {
			return nil, errors.ArtworkNotFoundError("Artwork not found")
		}

		log.Error("Failed to publish artwork", slog.Any("error", err))

		return nil, errors.DatabaseError("Failed to publish artwork").WithError(err)
	}

	log.Info("Artwork published")
	s.publish(ctx, events.New(events.TypeArtworkPublished, artworkID, ownerID, map[string]any{"title": artwork.Title}))

	return artwork, nil
}

// Delete removes the artwork and then, best-effort, its id from the owner's
// artwork list and from every favorites list and cart.
func (s *publicationService) Delete(ctx context.Context, ownerID, artworkID string) (*models.ArtworkMutationResult, error) {
	artwork, err := s.Get(ctx, ownerID, artworkID)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).With(slog.String("artwork_id", artworkID))

	if err := s.artworks.Delete(ctx, artworkID); err != nil {
		return nil, errors.DatabaseError("Failed to delete artwork").WithError(err)
	}

	if profile, err := s.profiles.GetProfile(ctx, ownerID); err != nil {
		log.Warn("Failed to load artist profile after delete", slog.Any("error", err))
	} else {
		ids := slices.DeleteFunc(slices.Clone(profile.Artworks), func(id string) bool { return id == artworkID })
		if err := s.profiles.SetArtworkIDs(ctx, ownerID, ids); err != nil {
			log.Warn("Failed to remove artwork from artist profile", slog.Any("error", err))
		}
	}

	favorites := s.fanOutFavorites(ctx, artworkID, func(entries []models.FavoriteEntry) ([]models.FavoriteEntry, bool) {
		before := len(entries)
		entries = slices.DeleteFunc(entries, func(f models.FavoriteEntry) bool { return f.ArtworkID == artworkID })

		return entries, len(entries) != before
	})

	carts := s.fanOutCarts(ctx, artworkID)

	s.publish(ctx, events.New(events.TypeArtworkDeleted, artworkID, ownerID, nil))

	return &models.ArtworkMutationResult{Artwork: artwork, Favorites: favorites, Carts: &carts}, nil
}

func (s *publicationService) fanOutFavorites(ctx context.Context, artworkID string, edit func([]models.FavoriteEntry) ([]models.FavoriteEntry, bool)) models.FanOutReport {
	report := models.FanOutReport{ArtworkID: artworkID, Updated: []string{}}
	log := logger.FromContext(ctx).With(slog.String("artwork_id", artworkID), slog.String("list", repository.FavoritesField))

	userIDs, err := s.favoritesIndex.FindReferencing(ctx, artworkID)
	if err != nil {
		log.Error("Failed to find favorites referencing artwork", slog.Any("error", err))
		report.Fail(fanOutIndexKey, err)

		return report
	}

	for _, userID := range userIDs {
		entries, err := s.profiles.GetFavorites(ctx, userID)
		if err == nil {
			var changed bool
			if entries, changed = edit(entries); !changed {
				continue
			}

			err = s.profiles.SaveFavorites(ctx, userID, entries)
		}

		metrics.FanOutUpdates.WithLabelValues(repository.FavoritesField, metrics.Outcome(err)).Inc()

		if err != nil {
			report.Fail(userID, err)

			continue
		}

		report.Succeeded(userID)
	}

	logFanOut(log, report)

	return report
}

func (s *publicationService) fanOutCarts(ctx context.Context, artworkID string) models.FanOutReport {
	report := models.FanOutReport{ArtworkID: artworkID, Updated: []string{}}
	log := logger.FromContext(ctx).With(slog.String("artwork_id", artworkID), slog.String("list", repository.CartField))

	userIDs, err := s.cartIndex.FindReferencing(ctx, artworkID)
	if err != nil {
		log.Error("Failed to find carts referencing artwork", slog.Any("error", err))
		report.Fail(fanOutIndexKey, err)

		return report
	}

	for _, userID := range userIDs {
		lines, err := s.profiles.GetCart(ctx, userID)
		if err == nil {
			before := len(lines)
			lines = slices.DeleteFunc(lines, func(l models.CartLine) bool { return l.ArtworkID == artworkID })

			if len(lines) == before {
				continue
			}

			err = s.profiles.SaveCart(ctx, userID, lines)
		}

		metrics.FanOutUpdates.WithLabelValues(repository.CartField, metrics.Outcome(err)).Inc()

		if err != nil {
			report.Fail(userID, err)

			continue
		}

		report.Succeeded(userID)
	}

	logFanOut(log, report)

	return report
}

func (s *publicationService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", slog.String("event_type", event.Type), slog.Any("error", err))
	}
}

func logFanOut(log *slog.Logger, report models.FanOutReport) {
	if len(report.Failed) > 0 {
		log.Warn("Fan-out finished with failures", slog.Int("updated", len(report.Updated)), slog.Any("failed", report.Failed))

		return
	}

	log.Info("Fan-out finished", slog.Int("updated", len(report.Updated)))
}

// publicFields is the gallery view of a published artwork, in the shape the
// gallery shares with catalog records.
func publicFields(a *models.ArtworkRecord) map[string]any {
	return map[string]any{
		"alt_description": a.Title,
		"urls": map[string]any{
			"regular": a.ImageURL,
			"small":   a.ImageURL,
		},
		"user": map[string]any{
			"name":     a.ArtistName,
			"location": a.ArtistLocation,
			"profile_image": map[string]any{
				"medium": a.ArtistPhoto,
			},
		},
		"tags":         models.TagsToFields(a.Tags),
		"price":        a.Price,
		"size":         a.Size.ToFields(),
		"isArtistWork": true,
	}
}

func mergedFields(a *models.ArtworkRecord) map[string]any {
	fields := a.ToFields()
	if a.IsPublished {
		for k, v := range publicFields(a) {
			fields[k] = v
		}
	}

	return fields
}

func checkDocumentSize(fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return errors.InternalError("Failed to encode artwork").WithError(err)
	}

	if len(raw) > MaxDocumentBytes {
		return errors.ValidationError("Document size too large")
	}

	return nil
}
