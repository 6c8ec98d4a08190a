package leave

import (
	"math"
	"strings"
	"time"
)

// CountDays returns the inclusive number of calendar days between start and
// end: ceil((end-start)/24h) + 1.
func CountDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}
	diff := end.Sub(start)
	return int(math.Ceil(diff.Hours()/24)) + 1, nil
}

// BalanceKey normalizes a leave type name the way balances are keyed:
// "Sick Leave" -> "sick_leave".
func BalanceKey(leaveType string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(leaveType)), " ", "_")
}

// BalanceMap indexes balances by BalanceKey of their leave type.
func BalanceMap(balances []LeaveBalance) map[string]LeaveBalance {
	m := make(map[string]LeaveBalance, len(balances))
	for _, b := range balances {
		m[BalanceKey(b.LeaveType)] = b
	}
	return m
}

// CheckBalance rejects a request of days for leaveType when a balance row
// exists and has fewer remaining days. No row means no limit.
func CheckBalance(balances map[string]LeaveBalance, leaveType string, days int) error {
	b, ok := balances[BalanceKey(leaveType)]
	if !ok {
		return nil
	}
	if days > b.RemainingDays {
		return &BalanceError{LeaveType: leaveType, Remaining: b.RemainingDays, Requested: days}
	}
	return nil
}
