package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"soothely/models"
	"soothely/services/notification"
	"soothely/utils"
)

// TypeBookingReminder is the asynq task type for pre-appointment reminders.
const TypeBookingReminder = "booking:reminder"

// reminderLead is how long before the appointment the reminder fires.
const reminderLead = 24 * time.Hour

// NewReminderTask builds the asynq task carrying a reminder payload.
func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	return asynq.NewTask(TypeBookingReminder, data), nil
}

// ScheduleReminder enqueues a reminder to fire 24 hours before the
// commitment starts. Appointments closer than the lead time get no reminder.
func ScheduleReminder(client *asynq.Client, c models.Commitment) error {
	date, err := time.Parse("2006-01-02", c.Date)
	if err != nil {
		return fmt.Errorf("bad commitment date %q: %w", c.Date, err)
	}
	start := date.Add(time.Duration(c.StartMinute) * time.Minute)
	fireAt := start.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		CommitmentID: c.ID,
		ProviderID:   c.ProviderID,
		CustomerID:   c.CustomerID,
		FireDate:     fireAt.Format(time.RFC3339),
		Title:        "Upcoming appointment",
		Body:         fmt.Sprintf("Your massage on %s at %s is tomorrow.", c.Date, models.MinutesToClock(c.StartMinute)),
	}
	task, err := NewReminderTask(payload)
	if err != nil {
		return err
	}

	if _, err := client.Enqueue(task, asynq.ProcessAt(fireAt), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// HandleReminderTask processes a due reminder by pushing it through the
// notification sender.
func HandleReminderTask(sender notification.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload models.ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal reminder payload: %w", err)
		}

		if err := sender.Send(ctx, payload); err != nil {
			utils.GetLogger().Error("reminder delivery failed",
				zap.String("commitmentId", payload.CommitmentID), zap.Error(err))
			return err
		}
		utils.GetLogger().Info("reminder delivered",
			zap.String("commitmentId", payload.CommitmentID),
			zap.String("providerId", payload.ProviderID))
		return nil
	}
}
