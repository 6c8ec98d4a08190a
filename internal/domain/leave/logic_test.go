package leave

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCountDays(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-01-10", "2024-01-10", 1},
		{"2024-01-10", "2024-01-12", 3},
		{"2024-01-10", "2024-01-20", 11},
		{"2024-02-28", "2024-03-01", 3},
	}
	for _, c := range cases {
		got, err := CountDays(date(c.start), date(c.end))
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s..%s", c.start, c.end)
	}
}

func TestCountDays_PartialDayRoundsUp(t *testing.T) {
	start := date("2024-01-10")
	got, err := CountDays(start, start.Add(36*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestCountDays_EndBeforeStart(t *testing.T) {
	_, err := CountDays(date("2024-01-12"), date("2024-01-10"))
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestBalanceKey(t *testing.T) {
	assert.Equal(t, "sick_leave", BalanceKey("Sick Leave"))
	assert.Equal(t, "annual_leave", BalanceKey(" ANNUAL LEAVE "))
	assert.Equal(t, "maternity", BalanceKey("Maternity"))
}

func TestCheckBalance(t *testing.T) {
	balances := BalanceMap([]LeaveBalance{
		{LeaveType: "Sick Leave", TotalDays: 10, UsedDays: 5, RemainingDays: 5},
	})

	assert.NoError(t, CheckBalance(balances, "Sick Leave", 3))
	assert.NoError(t, CheckBalance(balances, "Sick Leave", 5))
	assert.NoError(t, CheckBalance(balances, "Unpaid Leave", 40), "no balance row means no limit")

	err := CheckBalance(balances, "sick leave", 11)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientBalance))

	var balanceErr *BalanceError
	require.True(t, errors.As(err, &balanceErr))
	assert.Equal(t, 5, balanceErr.Remaining)
	assert.Equal(t, 11, balanceErr.Requested)
	assert.Contains(t, err.Error(), "You only have 5 days remaining. You requested 11 days.")
}

func TestCreateLeaveRequestRequest_Validate(t *testing.T) {
	req := CreateLeaveRequestRequest{LeaveType: "Sick Leave", StartDate: "2024-01-10", EndDate: "2024-01-12"}
	require.NoError(t, req.Validate())
	start, end := req.Dates()
	assert.Equal(t, date("2024-01-10"), start)
	assert.Equal(t, date("2024-01-12"), end)

	bad := CreateLeaveRequestRequest{LeaveType: "Sick Leave", StartDate: "2024-01-12", EndDate: "2024-01-10"}
	assert.Error(t, bad.Validate())

	missing := CreateLeaveRequestRequest{StartDate: "10/01/2024"}
	assert.Error(t, missing.Validate())
}
