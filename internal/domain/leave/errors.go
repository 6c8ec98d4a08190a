package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeExists      = errors.New("leave type already exists")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveBalanceNotFound = errors.New("leave balance not found")
	ErrLeaveBalanceExists   = errors.New("leave balance already exists for this type and year")
	ErrHolidayNotFound      = errors.New("holiday not found")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrEndBeforeStart       = errors.New("end date must not be before start date")
	ErrStartInPast          = errors.New("start date must not be in the past")
	ErrUsedExceedsTotal     = errors.New("used days must not exceed total days")
)

// BalanceError reports a request that exceeds the remaining balance.
type BalanceError struct {
	LeaveType string
	Remaining int
	Requested int
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("insufficient balance. You only have %d days remaining. You requested %d days.", e.Remaining, e.Requested)
}

func (e *BalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
