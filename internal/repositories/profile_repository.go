package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/frameart/storefront/internal/models"
	"github.com/frameart/storefront/internal/snapshot"
)

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	CreateProfile(ctx context.Context, profile *models.Profile) error
	UpdateProfile(ctx context.Context, userID string, fields Document) error
	GetCart(ctx context.Context, userID string) ([]models.CartLine, error)
	SaveCart(ctx context.Context, userID string, lines []models.CartLine) error
	GetFavorites(ctx context.Context, userID string) ([]models.FavoriteEntry, error)
	SaveFavorites(ctx context.Context, userID string, entries []models.FavoriteEntry) error
	AppendPurchase(ctx context.Context, userID string, purchase models.Purchase) error
	SetArtworkIDs(ctx context.Context, userID string, ids []string) error
}

type profileRepository struct {
	docs DocumentStore
}

func NewProfileRepo(docs DocumentStore) ProfileRepository {
	return &profileRepository{docs: docs}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	doc, err := r.docs.GetDocument(ctx, UsersCollection, userID)
	if err != nil {
		return nil, err
	}

	return ProfileFromDocument(userID, doc), nil
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return r.docs.SetDocument(ctx, UsersCollection, profile.ID, profile.ToFields())
}

func (r *profileRepository) UpdateProfile(ctx context.Context, userID string, fields Document) error {
	if len(fields) == 0 {
		return nil
	}

	return r.docs.UpdateFields(ctx, UsersCollection, userID, fields)
}

// GetCart reads an absent profile as an empty cart.
func (r *profileRepository) GetCart(ctx context.Context, userID string) ([]models.CartLine, error) {
	doc, err := r.docs.GetDocument(ctx, UsersCollection, userID)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return []models.CartLine{}, nil
		}

		return nil, err
	}

	return snapshot.CartLinesFromRaw(doc[CartField]), nil
}

func (r *profileRepository) SaveCart(ctx context.Context, userID string, lines []models.CartLine) error {
	fields := Document{CartField: models.CartLinesToFields(lines)}

	return r.docs.SetDocument(ctx, UsersCollection, userID, fields, MergeAll)
}

func (r *profileRepository) GetFavorites(ctx context.Context, userID string) ([]models.FavoriteEntry, error) {
	doc, err := r.docs.GetDocument(ctx, UsersCollection, userID)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return []models.FavoriteEntry{}, nil
		}

		return nil, err
	}

	return snapshot.FavoritesFromRaw(doc[FavoritesField]), nil
}

func (r *profileRepository) SaveFavorites(ctx context.Context, userID string, entries []models.FavoriteEntry) error {
	fields := Document{FavoritesField: models.FavoritesToFields(entries)}

	return r.docs.SetDocument(ctx, UsersCollection, userID, fields, MergeAll)
}

// AppendPurchase is a read-modify-write of the purchases list. Concurrent
// checkouts for one user are serialized by the session lock.
func (r *profileRepository) AppendPurchase(ctx context.Context, userID string, purchase models.Purchase) error {
	purchases := []any{}

	doc, err := r.docs.GetDocument(ctx, UsersCollection, userID)
	if err != nil && !errors.Is(err, ErrDocumentNotFound) {
		return err
	}

	if existing, ok := doc["purchases"].([]any); ok {
		purchases = append(purchases, existing...)
	}

	purchases = append(purchases, purchase.ToFields())

	return r.docs.SetDocument(ctx, UsersCollection, userID, Document{"purchases": purchases}, MergeAll)
}

func (r *profileRepository) SetArtworkIDs(ctx context.Context, userID string, ids []string) error {
	list := make([]any, 0, len(ids))
	for _, id := range ids {
		list = append(list, id)
	}

	return r.docs.SetDocument(ctx, UsersCollection, userID, Document{"artworks": list}, MergeAll)
}

// ProfileFromDocument never fails; fields that do not decode are left zero.
func ProfileFromDocument(userID string, doc Document) *models.Profile {
	profile := &models.Profile{
		ID:           userID,
		Email:        snapshot.Text(doc, "email"),
		FirstName:    snapshot.Text(doc, "firstName"),
		LastName:     snapshot.Text(doc, "lastName"),
		Location:     snapshot.Text(doc, "location"),
		ProfilePhoto: snapshot.Text(doc, "profilePhoto"),
		IsArtist:     snapshot.CoerceBool(doc["isArtist"]),
		CreatedAt:    snapshot.CoerceTime(doc["createdAt"]),
		Favorites:    snapshot.FavoritesFromRaw(doc[FavoritesField]),
		Purchases:    decodePurchases(doc["purchases"]),
		Cart:         snapshot.CartLinesFromRaw(doc[CartField]),
		ArtistProfile: models.ArtistProfile{
			Bio:        snapshot.Text(doc, "artistProfile.bio"),
			Statement:  snapshot.Text(doc, "artistProfile.statement"),
			IsComplete: snapshot.CoerceBool(snapshot.Lookup(doc, "artistProfile.isComplete")),
		},
	}

	if doc["artworks"] != nil {
		profile.Artworks = snapshot.Strings(doc["artworks"])
	}

	return profile
}

func decodePurchases(v any) []models.Purchase {
	purchases := []models.Purchase{}

	if v == nil {
		return purchases
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return purchases
	}

	if err := json.Unmarshal(raw, &purchases); err != nil {
		return []models.Purchase{}
	}

	return purchases
}
