package propertyRepo

import (
	"context"

	"imovelmatch/models"
)

// Filters is the query surface over the listings table. Zero-valued pointer
// fields impose no constraint; set fields are AND-composed. Text terms must
// already be normalized (lower-cased, diacritics folded) by the caller.
type Filters struct {
	PriceMin *float64
	PriceMax *float64
	SizeMin  *float64
	SizeMax  *float64

	Bedrooms    *int
	Bathrooms   *int
	GarageSpots *int

	StreetNorm       string
	NeighborhoodNorm string
	CityNorm         string
}

// Repository is the read surface over property listings.
type Repository interface {
	Search(ctx context.Context, f Filters) ([]models.Property, error)
	GetByID(ctx context.Context, propertyID string) (*models.Property, error)
	ReplaceAll(ctx context.Context, props []models.Property) error
	Count(ctx context.Context) (int64, error)
}
