package models

import "time"

type FavoriteEntry struct {
	ArtworkID string     `json:"id"`
	Title     string     `json:"title"`
	ImageURL  string     `json:"imageUrl"`
	Artist    string     `json:"artist"`
	Price     float64    `json:"price"`
	Size      Dimensions `json:"size"`
	AddedAt   time.Time  `json:"addedAt"`
}

func (f FavoriteEntry) ToFields() map[string]any {
	return map[string]any{
		"id":       f.ArtworkID,
		"title":    f.Title,
		"imageUrl": f.ImageURL,
		"artist":   f.Artist,
		"price":    f.Price,
		"size":     f.Size.ToFields(),
		"addedAt":  f.AddedAt.UTC().Format(time.RFC3339),
	}
}

func FavoritesToFields(entries []FavoriteEntry) []any {
	out := make([]any, 0, len(entries))
	for _, f := range entries {
		out = append(out, f.ToFields())
	}

	return out
}

type ToggleFavoriteRequest struct {
	Artwork map[string]any `json:"artwork" validate:"required"`
}

type ToggleFavoriteResponse struct {
	Added   bool   `json:"added"`
	Message string `json:"message"`
}

type FavoriteStatusResponse struct {
	ArtworkID string `json:"id"`
	Favorited bool   `json:"favorited"`
}
