// Package snapshot is the one place where artwork-shaped records of any
// vintage are turned into the normalized display fields stored in carts,
// favorites and public gallery documents.
//
// Nothing here returns an error. Unparsable numbers become 0 and missing
// text falls back to the defaults below, so a partially corrupt source
// record still produces a renderable entry.
package snapshot

import (
	"html"
	"strings"
	"time"

	"github.com/frameart/storefront/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultTitle  = "Untitled"
	DefaultArtist = "Unknown Artist"
)

// Raw is a record as it arrives from a client or a document store.
type Raw map[string]any

var textPolicy = bluemonday.StrictPolicy()

func Normalize(raw Raw) models.Snapshot {
	s := models.Snapshot{
		ID:             Text(raw, "id", "artworkId"),
		Title:          cleanText(Text(raw, "title", "alt_description")),
		Description:    cleanText(Text(raw, "description")),
		ImageURL:       Text(raw, "imageUrl", "imageRef", "urls.regular", "imageUrls.regular", "urls.small", "imageUrls.small"),
		ThumbURL:       Text(raw, "urls.small", "imageUrls.small", "thumbUrl"),
		ArtistName:     cleanText(Text(raw, "artist", "artist.name", "artistName", "user.name")),
		ArtistLocation: cleanText(Text(raw, "user.location", "artist.location")),
		ArtistPhoto:    Text(raw, "user.profile_image.medium", "artist.photo"),
		Price:          CoerceFloat(Lookup(raw, "price")),
		Size:           Dimensions(raw),
		Tags:           NormalizeTags(Lookup(raw, "tags")),
		CreatedAt:      Text(raw, "created_at", "createdAt"),
	}

	if s.Title == "" {
		s.Title = DefaultTitle
	}

	if s.ArtistName == "" {
		s.ArtistName = DefaultArtist
	}

	if s.ThumbURL == "" {
		s.ThumbURL = s.ImageURL
	}

	return s
}

// CartLineFromSnapshot builds a fresh line with quantity 1. A valid override
// replaces the snapshot price.
func CartLineFromSnapshot(s models.Snapshot, priceOverride *float64) models.CartLine {
	price := s.Price
	if priceOverride != nil {
		price = CoerceFloat(*priceOverride)
	}

	return models.CartLine{
		ArtworkID: s.ID,
		Title:     s.Title,
		Price:     price,
		Quantity:  1,
		ImageURL:  s.ImageURL,
		Artist:    s.ArtistName,
	}
}

func FavoriteFromSnapshot(s models.Snapshot, addedAt time.Time) models.FavoriteEntry {
	return models.FavoriteEntry{
		ArtworkID: s.ID,
		Title:     s.Title,
		ImageURL:  s.ImageURL,
		Artist:    s.ArtistName,
		Price:     s.Price,
		Size:      s.Size,
		AddedAt:   addedAt.UTC(),
	}
}

// Dimensions reads size.{width,height} or dimensions.{width,height}.
func Dimensions(raw Raw) models.Dimensions {
	for _, key := range []string{"size", "dimensions"} {
		if m, ok := asMap(Lookup(raw, key)); ok {
			return models.Dimensions{
				Width:  CoerceInt(m["width"]),
				Height: CoerceInt(m["height"]),
			}
		}
	}

	return models.Dimensions{
		Width:  CoerceInt(Lookup(raw, "width")),
		Height: CoerceInt(Lookup(raw, "height")),
	}
}

// NormalizeTags accepts a comma-joined string, a list of strings or a list
// of {title} objects. Other list items are dropped. The result is never nil.
func NormalizeTags(v any) []models.Tag {
	tags := []models.Tag{}

	add := func(s string) {
		if s = cleanText(s); s != "" {
			tags = append(tags, models.Tag{Title: s})
		}
	}

	switch t := v.(type) {
	case string:
		for _, part := range strings.Split(t, ",") {
			add(part)
		}
	case []string:
		for _, s := range t {
			add(s)
		}
	case []models.Tag:
		for _, tag := range t {
			add(tag.Title)
		}
	case []map[string]any:
		for _, m := range t {
			add(tagTitle(m))
		}
	case []any:
		for _, item := range t {
			add(tagTitle(item))
		}
	}

	return tags
}

// tagTitle reads a tag list item. Only strings and objects with a string
// title count; numbers are not coerced.
func tagTitle(item any) string {
	if s, ok := item.(string); ok {
		return s
	}

	m, ok := asMap(item)
	if !ok {
		return ""
	}

	title, _ := m["title"].(string)

	return title
}

func cleanText(s string) string {
	if s == "" {
		return ""
	}

	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
