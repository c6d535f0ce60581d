// Package reminder queues viewing reminders through asynq so a booked
// appointment produces a nudge shortly before it starts.
package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"imovelmatch/utils"
)

const TypeViewingReminder = "viewing:reminder"

// Lead time before the slot start at which the reminder fires.
const reminderLead = 60 * time.Minute

// ViewingReminderPayload is the task body for a scheduled reminder.
type ViewingReminderPayload struct {
	PropertyID string    `json:"property_id"`
	SlotStart  time.Time `json:"slot_start"`
}

// Scheduler enqueues reminder tasks. It implements slots.ReminderScheduler.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler(redisOpts asynq.RedisClientOpt) *Scheduler {
	return &Scheduler{client: asynq.NewClient(redisOpts)}
}

func (s *Scheduler) ScheduleViewingReminder(ctx context.Context, propertyID string, slotStart time.Time) error {
	payload, err := json.Marshal(ViewingReminderPayload{PropertyID: propertyID, SlotStart: slotStart})
	if err != nil {
		return fmt.Errorf("marshal reminder payload: %w", err)
	}

	due := slotStart.Add(-reminderLead)
	if due.Before(time.Now()) {
		// Viewing starts within the lead window; remind right away.
		due = time.Now()
	}

	task := asynq.NewTask(TypeViewingReminder, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(due)); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	return nil
}

func (s *Scheduler) Close() error {
	return s.client.Close()
}

// InitReminderWorker runs the reminder worker in the background.
func InitReminderWorker(redisOpts asynq.RedisClientOpt) {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeViewingReminder, handleViewingReminder)

	go func() {
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Error("reminder worker stopped", zap.Error(err))
		}
	}()
}

func handleViewingReminder(ctx context.Context, t *asynq.Task) error {
	var p ViewingReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode reminder payload: %w", err)
	}
	// Delivery channels hang off here; for now the reminder is logged.
	utils.GetLogger().Info("viewing reminder due",
		zap.String("property_id", p.PropertyID),
		zap.Time("slot_start", p.SlotStart))
	return nil
}
