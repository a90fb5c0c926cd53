package models

import "time"

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (d Dimensions) ToFields() map[string]any {
	return map[string]any{"width": d.Width, "height": d.Height}
}

type Tag struct {
	Title string `json:"title"`
}

func TagsToFields(tags []Tag) []any {
	out := make([]any, 0, len(tags))
	for _, t := range tags {
		out = append(out, map[string]any{"title": t.Title})
	}

	return out
}

// Snapshot is the normalized display view of any artwork-shaped record.
type Snapshot struct {
	ID             string
	Title          string
	Description    string
	ImageURL       string
	ThumbURL       string
	ArtistName     string
	ArtistLocation string
	ArtistPhoto    string
	Price          float64
	Size           Dimensions
	Tags           []Tag
	CreatedAt      string
}

type ArtworkRecord struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"artistId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Size        Dimensions `json:"size"`
	Tags        []Tag      `json:"tags"`
	ImageURL    string     `json:"imageUrl"`
	ThumbURL    string     `json:"thumbUrl,omitempty"`
	ArtistName  string     `json:"artistName,omitempty"`

	// Copied from the owner's profile at publish time.
	ArtistLocation string     `json:"artistLocation,omitempty"`
	ArtistPhoto    string     `json:"artistPhoto,omitempty"`
	IsPublished    bool       `json:"isPublished"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ToFields is the draft document. Publishing merges the public gallery
// fields into the same document.
func (a *ArtworkRecord) ToFields() map[string]any {
	fields := map[string]any{
		"id":          a.ID,
		"artistId":    a.OwnerID,
		"title":       a.Title,
		"description": a.Description,
		"price":       a.Price,
		"size":        a.Size.ToFields(),
		"tags":        TagsToFields(a.Tags),
		"imageUrl":    a.ImageURL,
		"artistName":  a.ArtistName,
		"isPublished": a.IsPublished,
		"createdAt":   a.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":   a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if a.PublishedAt != nil {
		fields["publishedAt"] = a.PublishedAt.UTC().Format(time.RFC3339)
	}

	return fields
}

type CreateArtworkRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Width       int     `json:"width" validate:"gte=0"`
	Height      int     `json:"height" validate:"gte=0"`
	Tags        string  `json:"tags"`
	ImageURL    string  `json:"imageUrl" validate:"required"`
}

// UpdateArtworkRequest carries only the fields the artist touched; nil
// fields are never written.
type UpdateArtworkRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Width       *int     `json:"width,omitempty" validate:"omitempty,gte=0"`
	Height      *int     `json:"height,omitempty" validate:"omitempty,gte=0"`
	Tags        *string  `json:"tags,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

type FanOutReport struct {
	ArtworkID string            `json:"artworkId"`
	Updated   []string          `json:"updated"`
	Failed    map[string]string `json:"failed,omitempty"`
}

func (r *FanOutReport) Succeeded(userID string) {
	r.Updated = append(r.Updated, userID)
}

func (r *FanOutReport) Fail(userID string, err error) {
	if r.Failed == nil {
		r.Failed = make(map[string]string)
	}
	r.Failed[userID] = err.Error()
}

type ArtworkMutationResult struct {
	Artwork   *ArtworkRecord `json:"artwork,omitempty"`
	Favorites FanOutReport   `json:"favorites"`
	Carts     *FanOutReport  `json:"carts,omitempty"`
}

type ArtistDisplay struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Photo    string `json:"photo,omitempty"`
}

type GallerySource string

const (
	GallerySourceArtist  GallerySource = "artist"
	GallerySourceCatalog GallerySource = "catalog"
)

type GalleryItem struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	ImageURL    string        `json:"imageUrl"`
	ThumbURL    string        `json:"thumbUrl,omitempty"`
	Artist      ArtistDisplay `json:"artist"`
	Price       float64       `json:"price"`
	Size        Dimensions    `json:"size"`
	Tags        []Tag         `json:"tags"`
	CreatedAt   string        `json:"createdAt,omitempty"`
	Source      GallerySource `json:"source"`
}

type ImageURLs struct {
	Regular string `json:"regular"`
	Small   string `json:"small"`
}

// CatalogArtwork is one record from the external stock-art catalog.
type CatalogArtwork struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	ImageURLs ImageURLs     `json:"imageUrls"`
	Artist    ArtistDisplay `json:"artist"`
	Tags      []Tag         `json:"tags"`
	CreatedAt string        `json:"createdAt"`
}
