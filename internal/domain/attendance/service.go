package attendance

import "context"

type AttendanceService interface {
	ListAll(ctx context.Context) ([]Attendance, error)
	ListMine(ctx context.Context, userID string) ([]Attendance, error)
	ClockIn(ctx context.Context, actor Actor, req ClockInRequest) (Attendance, error)
	ClockOut(ctx context.Context, actor Actor) (ClockOutResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (Attendance, error)
	Delete(ctx context.Context, id string) error
	MyStats(ctx context.Context, userID string) (MyStats, error)
	AdminStats(ctx context.Context) (AdminStats, error)
}
