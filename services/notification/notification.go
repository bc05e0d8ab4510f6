package notification

import (
	"context"

	"go.uber.org/zap"

	"soothely/models"
	"soothely/utils"
)

// Sender delivers a reminder to the customer through some channel (push,
// SMS, email). The scheduling pipeline only depends on this interface.
type Sender interface {
	Send(ctx context.Context, payload models.ReminderPayload) error
}

// LogSender writes reminders to the application log. It is the default
// sender until a real delivery channel is configured.
type LogSender struct{}

// NewLogSender returns a Sender that logs instead of delivering.
func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, payload models.ReminderPayload) error {
	utils.GetLogger().Info("reminder (log only)",
		zap.String("commitmentId", payload.CommitmentID),
		zap.String("title", payload.Title),
		zap.String("body", payload.Body))
	return nil
}
