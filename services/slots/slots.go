package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	slotRepo "imovelmatch/database/repository/slot"
	"imovelmatch/models"
	"imovelmatch/utils"
)

// ReminderScheduler schedules a viewing reminder after a successful booking.
// A nil scheduler disables reminders.
type ReminderScheduler interface {
	ScheduleViewingReminder(ctx context.Context, propertyID string, slotStart time.Time) error
}

// Service is the slot lifecycle manager: free-slot lookup plus the
// free<->booked transitions, with existence checks ahead of every mutation.
type Service interface {
	FreeSlots(ctx context.Context, propertyID string) ([]models.ViewingSlot, error)
	Book(ctx context.Context, propertyID string, slotStart time.Time) (string, error)
	Cancel(ctx context.Context, propertyID string, slotStart time.Time) (string, error)
}

type DefaultSlotService struct {
	Repo slotRepo.Repository

	// PageSize bounds the free-slot listing so assistant-facing output stays
	// small. This is a UX bound, not a storage limit.
	PageSize int

	// Strict rejects transitions to the slot's current status instead of
	// treating them as no-ops.
	Strict bool

	Reminders ReminderScheduler
}

func NewSlotService(repo slotRepo.Repository, pageSize int, strict bool) *DefaultSlotService {
	return &DefaultSlotService{Repo: repo, PageSize: pageSize, Strict: strict}
}

// FreeSlots returns the next free slots for a property, ascending by start
// time, capped at PageSize rows.
func (s *DefaultSlotService) FreeSlots(ctx context.Context, propertyID string) ([]models.ViewingSlot, error) {
	if err := s.checkProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.Repo.FreeByProperty(ctx, propertyID, s.PageSize)
}

// Book flips a free slot to booked and returns a confirmation naming the slot
// and property.
func (s *DefaultSlotService) Book(ctx context.Context, propertyID string, slotStart time.Time) (string, error) {
	if err := s.transition(ctx, propertyID, slotStart, models.SlotStatusBooked); err != nil {
		return "", err
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleViewingReminder(ctx, propertyID, slotStart); err != nil {
			// The booking itself succeeded; a lost reminder is not worth
			// failing the turn over.
			utils.GetLogger().Warn("failed to schedule viewing reminder",
				zap.String("property_id", propertyID), zap.Error(err))
		}
	}

	return fmt.Sprintf("Viewing booked for property %s on %s.",
		propertyID, slotStart.Format("2006-01-02 15:04")), nil
}

// Cancel flips a booked slot back to free. A cancelled slot is
// indistinguishable from one that was never booked.
func (s *DefaultSlotService) Cancel(ctx context.Context, propertyID string, slotStart time.Time) (string, error) {
	if err := s.transition(ctx, propertyID, slotStart, models.SlotStatusFree); err != nil {
		return "", err
	}
	return fmt.Sprintf("Viewing for property %s on %s has been cancelled.",
		propertyID, slotStart.Format("2006-01-02 15:04")), nil
}

func (s *DefaultSlotService) transition(ctx context.Context, propertyID string, slotStart time.Time, target models.SlotStatus) error {
	if err := s.checkProperty(ctx, propertyID); err != nil {
		return err
	}

	slot, err := s.Repo.Get(ctx, propertyID, slotStart)
	if err != nil {
		return err
	}
	if slot == nil {
		return &NotFoundError{Kind: KindSlot, PropertyID: propertyID, SlotStart: slotStart}
	}

	err = s.Repo.SetStatus(ctx, propertyID, slotStart, target, s.Strict)
	if errors.Is(err, slotRepo.ErrStatusConflict) {
		return &StatusConflictError{
			PropertyID: propertyID,
			SlotStart:  slotStart,
			Booking:    target == models.SlotStatusBooked,
		}
	}
	return err
}

// checkProperty uses slot rows as the existence proxy for a property: a
// listing without any slots is unknown to the booking subsystem.
func (s *DefaultSlotService) checkProperty(ctx context.Context, propertyID string) error {
	ok, err := s.Repo.HasProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Kind: KindProperty, PropertyID: propertyID}
	}
	return nil
}
