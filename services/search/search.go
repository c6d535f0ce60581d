package search

import (
	"context"

	"go.uber.org/zap"

	propertyRepo "imovelmatch/database/repository/property"
	"imovelmatch/models"
	"imovelmatch/utils"
)

// Filters is the caller-facing filter set. Unset fields impose no constraint;
// set fields are AND-composed. Text terms may carry any accenting.
type Filters struct {
	PriceMin *float64
	PriceMax *float64
	SizeMin  *float64
	SizeMax  *float64

	Bedrooms    *int
	Bathrooms   *int
	GarageSpots *int

	Street       string
	Neighborhood string
	City         string
}

// Service executes filtered listing searches.
type Service interface {
	Search(ctx context.Context, f Filters) ([]models.Property, error)
}

type DefaultSearchService struct {
	Repo propertyRepo.Repository
}

func NewSearchService(repo propertyRepo.Repository) *DefaultSearchService {
	return &DefaultSearchService{Repo: repo}
}

// Search runs the filter set against the listings table. Zero matches is not
// silent success: it returns a NoResultsError carrying retry guidance.
func (s *DefaultSearchService) Search(ctx context.Context, f Filters) ([]models.Property, error) {
	repoFilters := propertyRepo.Filters{
		PriceMin:         f.PriceMin,
		PriceMax:         f.PriceMax,
		SizeMin:          f.SizeMin,
		SizeMax:          f.SizeMax,
		Bedrooms:         f.Bedrooms,
		Bathrooms:        f.Bathrooms,
		GarageSpots:      f.GarageSpots,
		StreetNorm:       Fold(f.Street),
		NeighborhoodNorm: Fold(f.Neighborhood),
		CityNorm:         Fold(f.City),
	}

	props, err := s.Repo.Search(ctx, repoFilters)
	if err != nil {
		utils.GetLogger().Error("property search failed", zap.Error(err))
		return nil, err
	}
	if len(props) == 0 {
		return nil, &NoResultsError{}
	}
	return props, nil
}
