package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ArtistProfile struct {
	Bio        string `json:"bio"`
	Statement  string `json:"statement"`
	IsComplete bool   `json:"isComplete"`
}

type Profile struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Location      string          `json:"location,omitempty"`
	ProfilePhoto  string          `json:"profilePhoto,omitempty"`
	IsArtist      bool            `json:"isArtist"`
	CreatedAt     time.Time       `json:"createdAt"`
	Favorites     []FavoriteEntry `json:"favorites"`
	Purchases     []Purchase      `json:"purchases"`
	Cart          []CartLine      `json:"cart"`
	Artworks      []string        `json:"artworks"`
	ArtistProfile ArtistProfile   `json:"artistProfile"`
}

func (p *Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ToFields is the initial profile document written at sign-up. Artists start
// with an empty artworks list; everyone else stores null there.
func (p *Profile) ToFields() map[string]any {
	var artworks any
	if p.IsArtist {
		ids := make([]any, 0, len(p.Artworks))
		for _, id := range p.Artworks {
			ids = append(ids, id)
		}
		artworks = ids
	}

	return map[string]any{
		"email":        p.Email,
		"firstName":    p.FirstName,
		"lastName":     p.LastName,
		"location":     p.Location,
		"profilePhoto": p.ProfilePhoto,
		"isArtist":     p.IsArtist,
		"createdAt":    p.CreatedAt.UTC().Format(time.RFC3339),
		"favorites":    FavoritesToFields(p.Favorites),
		"purchases":    PurchasesToFields(p.Purchases),
		"cart":         CartLinesToFields(p.Cart),
		"artworks":     artworks,
		"artistProfile": map[string]any{
			"bio":        p.ArtistProfile.Bio,
			"statement":  p.ArtistProfile.Statement,
			"isComplete": p.ArtistProfile.IsComplete,
		},
	}
}

type SignUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	IsArtist  bool   `json:"isArtist"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success        bool     `json:"success"`
	Token          string   `json:"token,omitempty"`
	ExpiresIn      int      `json:"expires_in,omitempty"`
	RemainingTries int      `json:"remaining_tries,omitempty"`
	RetryAfter     int      `json:"retry_after,omitempty"`
	Message        string   `json:"message,omitempty"`
	Identity       Identity `json:"identity"`
	Profile        *Profile `json:"profile,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=200"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
	Bio          *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Statement    *string `json:"statement,omitempty" validate:"omitempty,max=2000"`
}

// Claims are issued by the local identity provider.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
