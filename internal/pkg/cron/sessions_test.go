package cron

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/stretchr/testify/assert"
)

type reapingRegistry struct {
	session.Registry
	maxIdle []time.Duration
}

func (r *reapingRegistry) Reap(_ context.Context, maxIdle time.Duration) int {
	r.maxIdle = append(r.maxIdle, maxIdle)
	return 0
}

func TestSessionReaper_RegistersJob(t *testing.T) {
	reg := &reapingRegistry{}
	s := NewScheduler()
	NewSessionReaper(reg, 10*time.Minute, time.Minute).RegisterJobs(s)

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())
	assert.Equal(t, []time.Duration{10 * time.Minute, 10 * time.Minute}, reg.maxIdle)

	defaults := NewSessionReaper(reg, 0, 0)
	assert.Equal(t, 30*time.Minute, defaults.idleTimeout)
	assert.Equal(t, 5*time.Minute, defaults.interval)
}
