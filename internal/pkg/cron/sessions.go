package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
)

// SessionReaper periodically closes idle or invalid session providers.
type SessionReaper struct {
	registry    session.Registry
	idleTimeout time.Duration
	interval    time.Duration
}

func NewSessionReaper(registry session.Registry, idleTimeout, interval time.Duration) *SessionReaper {
	if idleTimeout <= 0 {
		idleTimeout = 30 * time.Minute
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SessionReaper{registry: registry, idleTimeout: idleTimeout, interval: interval}
}

func (r *SessionReaper) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("session_reaper", r.interval, func(ctx context.Context) error {
		r.registry.Reap(ctx, r.idleTimeout)
		return nil
	})
}
