package slotRepo

import (
	"context"
	"time"

	"imovelmatch/models"
)

// Repository is the query/mutation surface over viewing slots. A property is
// considered known to the booking subsystem when it has at least one slot row.
type Repository interface {
	HasProperty(ctx context.Context, propertyID string) (bool, error)
	Get(ctx context.Context, propertyID string, start time.Time) (*models.ViewingSlot, error)
	FreeByProperty(ctx context.Context, propertyID string, limit int) ([]models.ViewingSlot, error)

	// SetStatus flips the status of one slot with a single conditional
	// write. When strict is true the update fails with ErrStatusConflict if
	// the slot already holds the target status.
	SetStatus(ctx context.Context, propertyID string, start time.Time, status models.SlotStatus, strict bool) error

	// InsertMissing creates the given slots, skipping (property, start)
	// pairs that already exist so booked rows are never rewritten.
	InsertMissing(ctx context.Context, slots []models.ViewingSlot) (int64, error)

	CountByStatus(ctx context.Context, status models.SlotStatus) (int64, error)
	DeleteAll(ctx context.Context) error
}
