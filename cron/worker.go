package cron

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"soothely/config"
	"soothely/services/notification"
	"soothely/services/tasks"
	"soothely/utils"
)

// NewQueueClient returns the asynq client used to enqueue scheduled work.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// StartWorker runs the asynq server processing scheduled reminders in the
// background. Returns the server so the caller can Shutdown on exit.
func StartWorker(sender notification.Sender) *asynq.Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeBookingReminder, tasks.HandleReminderTask(sender))

	go func() {
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Fatal("reminder worker stopped", zap.Error(err))
		}
	}()
	return srv
}
