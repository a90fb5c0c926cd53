package models

// CartLine is keyed by ArtworkID. Quantity is never stored below 1.
type CartLine struct {
	ArtworkID string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
	Artist    string  `json:"artist"`
}

func (l CartLine) ToFields() map[string]any {
	return map[string]any{
		"id":       l.ArtworkID,
		"title":    l.Title,
		"price":    l.Price,
		"quantity": l.Quantity,
		"imageUrl": l.ImageURL,
		"artist":   l.Artist,
	}
}

func CartLinesToFields(lines []CartLine) []any {
	out := make([]any, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.ToFields())
	}

	return out
}

type CartView struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
	Count int        `json:"count"`
}

// Artwork is left untyped: the gallery, favorites and artist pages all send
// slightly different shapes and the snapshot normalizer reads them all.
type AddToCartRequest struct {
	Artwork map[string]any `json:"artwork" validate:"required"`
	Price   *float64       `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// Quantity is a pointer so an omitted field is rejected rather than read as
// zero, which would remove the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
