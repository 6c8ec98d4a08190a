package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)

	// ClockIn inserts an open record unless one already exists for the
	// user and date; inserted is false in that case.
	ClockIn(ctx context.Context, record Attendance) (created Attendance, inserted bool, err error)
	// ClockOut closes the most recent open record of the user.
	ClockOut(ctx context.Context, userID string, at time.Time) (Attendance, error)

	Update(ctx context.Context, record Attendance) (Attendance, error)
	Delete(ctx context.Context, id string) error
}
