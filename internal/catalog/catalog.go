// Package catalog reads the external stock-art catalog that seeds the public
// gallery next to artist-published work.
package catalog

import (
	"context"
	"errors"

	"github.com/cespare/xxhash/v2"
	"github.com/frameart/storefront/internal/models"
)

var ErrNotFound = errors.New("catalog: artwork not found")

type Source interface {
	Search(ctx context.Context, query string, page int) ([]models.CatalogArtwork, error)
	Get(ctx context.Context, id string) (*models.CatalogArtwork, error)
}

const (
	minPrice  = 500
	maxPrice  = 3500
	minWidth  = 50
	maxWidth  = 150
	minHeight = 70
	maxHeight = 200
)

// PriceFor returns the listing price of a catalog item. It depends only on
// the id, so a cart line keeps the price it was shown with.
func PriceFor(id string) float64 {
	return float64(minPrice + xxhash.Sum64String("price:"+id)%(maxPrice-minPrice))
}

func SizeFor(id string) models.Dimensions {
	return models.Dimensions{
		Width:  minWidth + int(xxhash.Sum64String("width:"+id)%(maxWidth-minWidth)),
		Height: minHeight + int(xxhash.Sum64String("height:"+id)%(maxHeight-minHeight)),
	}
}
