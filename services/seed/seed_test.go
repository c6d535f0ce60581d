package seed

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	propertyRepo "imovelmatch/database/repository/property"
	slotRepo "imovelmatch/database/repository/slot"
	"imovelmatch/models"
)

// A Monday, so a 7-day horizon contains exactly one Sunday.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Property{}, &models.ViewingSlot{}))
	return db
}

func newTestSeeder(t *testing.T, db *gorm.DB, ratio float64) *Seeder {
	return NewSeeder(propertyRepo.NewGormPropertyRepo(db), slotRepo.NewGormSlotRepo(db), Options{
		DaysAhead:   7,
		OpenHour:    8,
		CloseHour:   20,
		SlotMinutes: 30,
		BookedRatio: ratio,
		RandSeed:    42,
	})
}

func TestSeedProperties_FillsNormalizedColumns(t *testing.T) {
	db := newTestDB(t)
	s := newTestSeeder(t, db, 0)
	ctx := context.Background()

	require.NoError(t, s.SeedProperties(ctx, []models.Property{
		{PropertyID: "s1", Street: "Rua Augusta", Neighborhood: "Consolação", City: "São Paulo"},
	}))

	var got models.Property
	require.NoError(t, db.First(&got, "property_id = ?", "s1").Error)
	assert.Equal(t, "sao paulo", got.CityNorm)
	assert.Equal(t, "consolacao", got.NeighborhoodNorm)
	assert.Equal(t, "rua augusta", got.StreetNorm)
}

func TestSeedProperties_ReplacesExistingSet(t *testing.T) {
	db := newTestDB(t)
	s := newTestSeeder(t, db, 0)
	ctx := context.Background()

	require.NoError(t, s.SeedProperties(ctx, []models.Property{{PropertyID: "old", City: "Curitiba"}}))
	require.NoError(t, s.SeedProperties(ctx, []models.Property{{PropertyID: "new", City: "Curitiba"}}))

	var ids []string
	require.NoError(t, db.Model(&models.Property{}).Pluck("property_id", &ids).Error)
	assert.Equal(t, []string{"new"}, ids)
}

func TestGenerateHorizon_BusinessHoursNoSundays(t *testing.T) {
	db := newTestDB(t)
	s := newTestSeeder(t, db, 0)
	ctx := context.Background()

	require.NoError(t, s.SeedProperties(ctx, []models.Property{{PropertyID: "abcfoo42", City: "Curitiba"}}))

	inserted, err := s.GenerateHorizon(ctx, monday)
	require.NoError(t, err)
	// 6 working days, 24 half-hour slots between 08:00 and 20:00.
	assert.Equal(t, int64(6*24), inserted)

	var slots []models.ViewingSlot
	require.NoError(t, db.Find(&slots).Error)
	require.Len(t, slots, 6*24)
	for _, slot := range slots {
		assert.NotEqual(t, time.Sunday, slot.SlotStart.Weekday())
		assert.GreaterOrEqual(t, slot.SlotStart.Hour(), 8)
		assert.Less(t, slot.SlotStart.Hour(), 20)
		assert.Equal(t, 30*time.Minute, slot.SlotEnd.Sub(slot.SlotStart))
		assert.Equal(t, models.SlotStatusFree, slot.Status)
	}
}

func TestGenerateHorizon_PreBooksRoughlyTheConfiguredRatio(t *testing.T) {
	db := newTestDB(t)
	s := newTestSeeder(t, db, 0.30)
	ctx := context.Background()

	require.NoError(t, s.SeedProperties(ctx, []models.Property{{PropertyID: "abcfoo42", City: "Curitiba"}}))
	_, err := s.GenerateHorizon(ctx, monday)
	require.NoError(t, err)

	var booked, total int64
	require.NoError(t, db.Model(&models.ViewingSlot{}).Count(&total).Error)
	require.NoError(t, db.Model(&models.ViewingSlot{}).Where("status = ?", models.SlotStatusBooked).Count(&booked).Error)
	assert.Greater(t, booked, int64(0))
	assert.Less(t, booked, total)
}

func TestGenerateHorizon_IdempotentAndPreservesBookings(t *testing.T) {
	db := newTestDB(t)
	s := newTestSeeder(t, db, 0)
	ctx := context.Background()

	require.NoError(t, s.SeedProperties(ctx, []models.Property{{PropertyID: "abcfoo42", City: "Curitiba"}}))
	_, err := s.GenerateHorizon(ctx, monday)
	require.NoError(t, err)

	// Book one slot by hand, then regenerate over the same window.
	var slot models.ViewingSlot
	require.NoError(t, db.First(&slot).Error)
	require.NoError(t, db.Model(&models.ViewingSlot{}).
		Where("property_id = ? AND slot_start = ?", slot.PropertyID, slot.SlotStart).
		Update("status", models.SlotStatusBooked).Error)

	inserted, err := s.GenerateHorizon(ctx, monday)
	require.NoError(t, err)
	assert.Zero(t, inserted, "an unchanged window must insert nothing")

	var booked int64
	require.NoError(t, db.Model(&models.ViewingSlot{}).Where("status = ?", models.SlotStatusBooked).Count(&booked).Error)
	assert.Equal(t, int64(1), booked)
}

func TestGenerateHorizon_NewListingGetsSlotsOnNextRun(t *testing.T) {
	db := newTestDB(t)
	s := newTestSeeder(t, db, 0)
	ctx := context.Background()

	require.NoError(t, s.SeedProperties(ctx, []models.Property{{PropertyID: "abcfoo42", City: "Curitiba"}}))
	first, err := s.GenerateHorizon(ctx, monday)
	require.NoError(t, err)

	require.NoError(t, s.SeedProperties(ctx, []models.Property{
		{PropertyID: "abcfoo42", City: "Curitiba"},
		{PropertyID: "xyzbar99", City: "Florianópolis"},
	}))
	second, err := s.GenerateHorizon(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, first, second, "only the new listing's slots are missing")
}
