package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/notification"
	notificationService "github.com/cmlabs-hris/ems-backend-go/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	types []notification.GenerateType
	err   error
}

func (f *fakeGenerator) Generate(ctx context.Context, req notification.GenerateRequest) (notification.GenerateResult, error) {
	f.types = append(f.types, req.Type)
	if f.err != nil {
		return notification.GenerateResult{}, f.err
	}
	return notification.GenerateResult{Success: true, Message: "ok"}, nil
}

func TestNotificationJobs_RunOnce(t *testing.T) {
	gen := &fakeGenerator{}
	s := NewScheduler()
	NewNotificationJobs(gen, time.Hour).RegisterJobs(s)

	s.RunOnce(context.Background())

	assert.Equal(t, []notification.GenerateType{
		notification.GenerateLateArrival,
		notification.GenerateAbsent,
		notification.GenerateOvertimeAlert,
	}, gen.types)
}

func TestNotificationJobs_JobReportsError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("db down")}
	j := NewNotificationJobs(gen, 0)

	err := j.job(notification.GenerateAbsent)(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent")
	assert.Equal(t, time.Hour, j.interval)
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	s.Stop()
}

type dayAttendance []attendance.Attendance

func (d dayAttendance) ListByDate(context.Context, time.Time) ([]attendance.Attendance, error) {
	return d, nil
}

type noEmployees struct{}

func (noEmployees) ListActive(context.Context) ([]employee.Employee, error) { return nil, nil }

// keyedStore keeps one row per dedup key like the notifications table.
type keyedStore struct {
	rows map[string]notification.CreateNotificationRequest
}

func (k *keyedStore) CreateMany(_ context.Context, reqs []notification.CreateNotificationRequest) ([]notification.Notification, error) {
	var created []notification.Notification
	for _, r := range reqs {
		if _, ok := k.rows[*r.DedupKey]; ok {
			continue
		}
		k.rows[*r.DedupKey] = r
		created = append(created, notification.Notification{UserID: r.UserID, Title: r.Title})
	}
	return created, nil
}

func TestNotificationJobs_RepeatedTicksNotifyOnce(t *testing.T) {
	// Checked in at 11:00 today.
	now := time.Now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	att := dayAttendance{{UserID: "u-late", Date: day, CheckIn: day.Add(11 * time.Hour)}}
	store := &keyedStore{rows: map[string]notification.CreateNotificationRequest{}}

	s := NewScheduler()
	gen := notificationService.NewGenerator(att, noEmployees{}, store, time.UTC)
	NewNotificationJobs(gen, time.Minute).RegisterJobs(s)

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	require.Len(t, store.rows, 1)
	key := notification.DedupKey(notification.GenerateLateArrival, "u-late", day)
	assert.Equal(t, "Late Arrival Notice", store.rows[key].Title)
}

func TestScheduler_RunOnceAllowsJobsToRegisterJobs(t *testing.T) {
	s := NewScheduler()
	var added atomic.Int32
	s.AddJob("parent", time.Hour, func(ctx context.Context) error {
		s.AddJob("child", time.Hour, func(ctx context.Context) error {
			added.Add(1)
			return nil
		})
		return nil
	})

	done := make(chan struct{})
	go func() {
		s.RunOnce(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunOnce blocked while a job registered another job")
	}

	assert.Equal(t, int32(0), added.Load(), "child runs on the next pass")
	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), added.Load())
}

func TestScheduler_PanickingJobDoesNotStopOthers(t *testing.T) {
	var ran atomic.Bool
	s := NewScheduler()
	s.AddJob("boom", time.Hour, func(context.Context) error { panic("bad state") })
	s.AddJob("after", time.Hour, func(context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.NotPanics(t, func() { s.RunOnce(context.Background()) })
	assert.True(t, ran.Load())
}

func TestScheduler_AddJobAfterStartRuns(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.Start()
	defer s.Stop()

	s.AddJob("late", time.Hour, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	s.Stop()
	assert.NotPanics(t, s.Stop)
}
