package propertyRepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"imovelmatch/models"
)

const queryTimeout = 5 * time.Second

type gormPropertyRepo struct {
	db *gorm.DB
}

// NewGormPropertyRepo creates a gorm-backed property repository.
func NewGormPropertyRepo(db *gorm.DB) Repository {
	return &gormPropertyRepo{db: db}
}

func (r *gormPropertyRepo) Search(ctx context.Context, f Filters) ([]models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&models.Property{})

	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}
	if f.SizeMin != nil {
		q = q.Where("size >= ?", *f.SizeMin)
	}
	if f.SizeMax != nil {
		q = q.Where("size <= ?", *f.SizeMax)
	}
	if f.Bedrooms != nil {
		q = q.Where("bedrooms = ?", *f.Bedrooms)
	}
	if f.Bathrooms != nil {
		q = q.Where("bathrooms = ?", *f.Bathrooms)
	}
	if f.GarageSpots != nil {
		q = q.Where("garage_spots = ?", *f.GarageSpots)
	}
	if f.StreetNorm != "" {
		q = q.Where("street_norm LIKE ?", "%"+f.StreetNorm+"%")
	}
	if f.NeighborhoodNorm != "" {
		q = q.Where("neighborhood_norm LIKE ?", "%"+f.NeighborhoodNorm+"%")
	}
	if f.CityNorm != "" {
		q = q.Where("city_norm LIKE ?", "%"+f.CityNorm+"%")
	}

	// Row order is implementation-defined; callers must not depend on it.
	var props []models.Property
	if err := q.Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

func (r *gormPropertyRepo) GetByID(ctx context.Context, propertyID string) (*models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var prop models.Property
	err := r.db.WithContext(ctx).First(&prop, "property_id = ?", propertyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prop, nil
}

// ReplaceAll swaps the full listing set in one transaction. Used only by the
// offline seeding step.
func (r *gormPropertyRepo) ReplaceAll(ctx context.Context, props []models.Property) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Property{}).Error; err != nil {
			return err
		}
		if len(props) == 0 {
			return nil
		}
		return tx.CreateInBatches(props, 200).Error
	})
}

func (r *gormPropertyRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Property{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
