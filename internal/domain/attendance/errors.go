package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAlreadyClockedIn    = errors.New("already clocked in today")
	ErrNotClockedIn        = errors.New("no open attendance session to clock out")
	ErrCheckOutBeforeIn    = errors.New("check_out must be after check_in")
	ErrEmployeeNotLinked   = errors.New("no employee profile is linked to this account")
	ErrInvalidAttendanceID = errors.New("invalid attendance id")
)
