package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute), mr
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "ems:leave_balances:all", All(LeaveBalances).String())
	assert.Equal(t, "ems:leave_balances:user:42", User(LeaveBalances, "42").String())

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ems:attendance_stats:day:2024-01-10", Day(AttendanceStats, day).String())
	assert.Equal(t, "ems:attendance_stats:user:42:2024-01-10", User(AttendanceStats, "42").On(day).String())
	assert.False(t, Day(AttendanceStats, day).IsAll())
}

func TestInvalidate_AllDropsDayScopedKeys(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, c.Set(ctx, Day(AttendanceStats, day), 1))
	require.NoError(t, c.Set(ctx, User(AttendanceStats, "42").On(day), 2))

	require.NoError(t, c.Invalidate(ctx, User(Attendance, "7")))
	assert.False(t, mr.Exists("ems:attendance_stats:day:2024-01-10"))
	assert.False(t, mr.Exists("ems:attendance_stats:user:42:2024-01-10"))
}

func TestFetch_ReadThrough(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	got, err := Fetch(ctx, c, All(Employees), load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = Fetch(ctx, c, All(Employees), load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("ems:employees:all"))
	assert.Equal(t, time.Minute, mr.TTL("ems:employees:all"))
}

func TestFetch_LoadErrorIsNotCached(t *testing.T) {
	c, mr := newTestCache(t)

	_, err := Fetch(context.Background(), c, All(Payslips), func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	assert.False(t, mr.Exists("ems:payslips:all"))
}

func TestInvalidate_FollowsEdges(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for _, k := range []Key{
		User(Attendance, "u1"), All(Attendance),
		User(AttendanceStats, "u1"), All(AttendanceStats),
		User(Attendance, "u2"), All(Holidays),
	} {
		require.NoError(t, c.Set(ctx, k, 1))
	}

	require.NoError(t, c.Invalidate(ctx, User(Attendance, "u1")))

	assert.False(t, mr.Exists("ems:attendance:user:u1"))
	assert.False(t, mr.Exists("ems:attendance:all"))
	assert.False(t, mr.Exists("ems:attendance_stats:user:u1"))
	assert.False(t, mr.Exists("ems:attendance_stats:all"))
	assert.True(t, mr.Exists("ems:attendance:user:u2"))
	assert.True(t, mr.Exists("ems:holidays:all"))
}

func TestInvalidate_AllDropsEveryScope(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, User(Payslips, "u1"), 1))
	require.NoError(t, c.Set(ctx, User(PayrollRuns, "u2"), 1))
	require.NoError(t, c.Set(ctx, All(PayrollRuns), 1))

	require.NoError(t, c.Invalidate(ctx, All(Payslips)))

	assert.False(t, mr.Exists("ems:payslips:user:u1"))
	assert.False(t, mr.Exists("ems:payroll_runs:user:u2"))
	assert.False(t, mr.Exists("ems:payroll_runs:all"))
}

func TestCache_DisabledPassesThrough(t *testing.T) {
	c := New(nil, 0)
	assert.False(t, c.Enabled())

	calls := 0
	for i := 0; i < 2; i++ {
		_, err := Fetch(context.Background(), c, All(Holidays), func(ctx context.Context) (int, error) {
			calls++
			return 1, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, c.Invalidate(context.Background(), All(Holidays)))
}
