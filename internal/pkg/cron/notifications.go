package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/notification"
)

// NotificationJobs runs the attendance notification generators for today.
type NotificationJobs struct {
	generator notification.Generator
	interval  time.Duration
}

func NewNotificationJobs(generator notification.Generator, interval time.Duration) *NotificationJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &NotificationJobs{generator: generator, interval: interval}
}

func (j *NotificationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("late_arrival_notifications", j.interval, j.job(notification.GenerateLateArrival))
	scheduler.AddJob("absence_notifications", j.interval, j.job(notification.GenerateAbsent))
	scheduler.AddJob("overtime_notifications", j.interval, j.job(notification.GenerateOvertimeAlert))
}

func (j *NotificationJobs) job(t notification.GenerateType) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		result, err := j.generator.Generate(ctx, notification.GenerateRequest{Type: t})
		if err != nil {
			return fmt.Errorf("generate %s notifications: %w", t, err)
		}
		if !result.Success {
			return errors.New(result.Message)
		}
		slog.Info("Cron: attendance notifications generated", "type", t, "message", result.Message)
		return nil
	}
}
