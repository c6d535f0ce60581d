package slots

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

	slotRepo "imovelmatch/database/repository/slot"
	"imovelmatch/models"
)

var baseStart = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Property{}, &models.ViewingSlot{}))
	return db
}

func seedSlots(t *testing.T, db *gorm.DB, propertyID string, n int, status models.SlotStatus) []models.ViewingSlot {
	slots := make([]models.ViewingSlot, 0, n)
	for i := 0; i < n; i++ {
		start := baseStart.Add(time.Duration(i) * 30 * time.Minute)
		slots = append(slots, models.ViewingSlot{
			PropertyID: propertyID,
			SlotStart:  start,
			SlotEnd:    start.Add(30 * time.Minute),
			Status:     status,
		})
	}
	require.NoError(t, db.Create(&slots).Error)
	return slots
}

func newService(t *testing.T, db *gorm.DB, strict bool) *DefaultSlotService {
	return NewSlotService(slotRepo.NewGormSlotRepo(db), 10, strict)
}

func TestFreeSlots_SortedCappedFreeOnly(t *testing.T) {
	db := newTestDB(t)
	seedSlots(t, db, "abcfoo42", 15, models.SlotStatusFree)
	// Interleave booked rows that must never appear.
	booked := []models.ViewingSlot{
		{PropertyID: "abcfoo42", SlotStart: baseStart.Add(-time.Hour), SlotEnd: baseStart.Add(-30 * time.Minute), Status: models.SlotStatusBooked},
	}
	require.NoError(t, db.Create(&booked).Error)

	svc := newService(t, db, false)
	free, err := svc.FreeSlots(context.Background(), "abcfoo42")
	require.NoError(t, err)

	assert.Len(t, free, 10)
	for i, s := range free {
		assert.Equal(t, models.SlotStatusFree, s.Status)
		if i > 0 {
			assert.True(t, free[i-1].SlotStart.Before(s.SlotStart), "slots must be ascending by start")
		}
	}
}

func TestBook_RemovesSlotFromFreeList(t *testing.T) {
	db := newTestDB(t)
	seeded := seedSlots(t, db, "abcfoo42", 3, models.SlotStatusFree)
	svc := newService(t, db, false)
	ctx := context.Background()

	target := seeded[1].SlotStart
	msg, err := svc.Book(ctx, "abcfoo42", target)
	require.NoError(t, err)
	assert.Contains(t, msg, "abcfoo42")

	free, err := svc.FreeSlots(ctx, "abcfoo42")
	require.NoError(t, err)
	for _, s := range free {
		assert.False(t, s.SlotStart.Equal(target), "booked slot must not be listed as free")
	}
}

func TestCancel_ReturnsSlotToFreeList(t *testing.T) {
	db := newTestDB(t)
	seeded := seedSlots(t, db, "xyzbar99", 2, models.SlotStatusBooked)
	svc := newService(t, db, false)
	ctx := context.Background()

	target := seeded[0].SlotStart
	msg, err := svc.Cancel(ctx, "xyzbar99", target)
	require.NoError(t, err)
	assert.Contains(t, msg, "cancelled")

	free, err := svc.FreeSlots(ctx, "xyzbar99")
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.True(t, free[0].SlotStart.Equal(target))
}

func TestMutations_UnknownProperty(t *testing.T) {
	db := newTestDB(t)
	seedSlots(t, db, "abcfoo42", 1, models.SlotStatusFree)
	svc := newService(t, db, false)
	ctx := context.Background()

	for _, op := range []string{"book", "cancel", "list"} {
		t.Run(op, func(t *testing.T) {
			var err error
			switch op {
			case "book":
				_, err = svc.Book(ctx, "999999", baseStart)
			case "cancel":
				_, err = svc.Cancel(ctx, "999999", baseStart)
			case "list":
				_, err = svc.FreeSlots(ctx, "999999")
			}
			var nf *NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, KindProperty, nf.Kind)
		})
	}

	// No mutation happened.
	var n int64
	require.NoError(t, db.Model(&models.ViewingSlot{}).Where("status = ?", models.SlotStatusBooked).Count(&n).Error)
	assert.Zero(t, n)
}

func TestMutations_UnknownSlotOnKnownProperty(t *testing.T) {
	db := newTestDB(t)
	seedSlots(t, db, "abcfoo42", 1, models.SlotStatusFree)
	svc := newService(t, db, false)
	ctx := context.Background()

	missing := baseStart.Add(48 * time.Hour)

	_, err := svc.Book(ctx, "abcfoo42", missing)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, KindSlot, nf.Kind)

	_, err = svc.Cancel(ctx, "abcfoo42", missing)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, KindSlot, nf.Kind)

	var n int64
	require.NoError(t, db.Model(&models.ViewingSlot{}).Where("status = ?", models.SlotStatusBooked).Count(&n).Error)
	assert.Zero(t, n)
}

func TestStrictMode_RejectsStatusConflicts(t *testing.T) {
	db := newTestDB(t)
	seedSlots(t, db, "abcfoo42", 1, models.SlotStatusBooked)
	seedSlots(t, db, "xyzbar99", 1, models.SlotStatusFree)
	svc := newService(t, db, true)
	ctx := context.Background()

	_, err := svc.Book(ctx, "abcfoo42", baseStart)
	var conflict *StatusConflictError
	require.ErrorAs(t, err, &conflict)
	assert.True(t, conflict.Booking)

	_, err = svc.Cancel(ctx, "xyzbar99", baseStart)
	require.ErrorAs(t, err, &conflict)
	assert.False(t, conflict.Booking)
}

func TestPermissiveMode_StatusConflictIsNoOp(t *testing.T) {
	db := newTestDB(t)
	seedSlots(t, db, "abcfoo42", 1, models.SlotStatusBooked)
	svc := newService(t, db, false)

	_, err := svc.Book(context.Background(), "abcfoo42", baseStart)
	require.NoError(t, err)

	var slot models.ViewingSlot
	require.NoError(t, db.First(&slot, "property_id = ?", "abcfoo42").Error)
	assert.Equal(t, models.SlotStatusBooked, slot.Status)
}

type fakeReminder struct {
	calls []string
}

func (f *fakeReminder) ScheduleViewingReminder(_ context.Context, propertyID string, _ time.Time) error {
	f.calls = append(f.calls, propertyID)
	return nil
}

func TestBook_SchedulesReminder(t *testing.T) {
	db := newTestDB(t)
	seeded := seedSlots(t, db, "abcfoo42", 2, models.SlotStatusFree)
	svc := newService(t, db, false)
	rem := &fakeReminder{}
	svc.Reminders = rem
	ctx := context.Background()

	_, err := svc.Book(ctx, "abcfoo42", seeded[0].SlotStart)
	require.NoError(t, err)
	assert.Equal(t, []string{"abcfoo42"}, rem.calls)

	// A failed booking must not enqueue anything.
	_, err = svc.Book(ctx, "abcfoo42", seeded[0].SlotStart.Add(90*time.Minute))
	require.Error(t, err)
	assert.Len(t, rem.calls, 1)
}
