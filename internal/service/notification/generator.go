package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/notification"
)

type AttendanceReader interface {
	ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error)
}

type EmployeeLister interface {
	ListActive(ctx context.Context) ([]employee.Employee, error)
}

type Notifier interface {
	CreateMany(ctx context.Context, reqs []notification.CreateNotificationRequest) ([]notification.Notification, error)
}

type generator struct {
	attendance AttendanceReader
	employees  EmployeeLister
	notifier   Notifier
	loc        *time.Location
	now        func() time.Time
}

// NewGenerator creates the attendance notification generator. Dates and
// thresholds are evaluated in loc.
func NewGenerator(att AttendanceReader, employees EmployeeLister, notifier Notifier, loc *time.Location) notification.Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &generator{
		attendance: att,
		employees:  employees,
		notifier:   notifier,
		loc:        loc,
		now:        time.Now,
	}
}

func (g *generator) Generate(ctx context.Context, req notification.GenerateRequest) (notification.GenerateResult, error) {
	if !req.Type.Valid() {
		return notification.GenerateResult{}, notification.ErrInvalidNotificationType
	}

	day := req.Day(g.now(), g.loc)
	slog.Info("Processing attendance notifications", "type", req.Type, "date", day.Format("2006-01-02"))

	switch req.Type {
	case notification.GenerateLateArrival:
		return g.lateArrivals(ctx, day, req.EmployeeID)
	case notification.GenerateAbsent:
		return g.absences(ctx, day, req.EmployeeID)
	default:
		return g.overtime(ctx, day, req.EmployeeID)
	}
}

func (g *generator) records(ctx context.Context, day time.Time, employeeID *string) ([]attendance.Attendance, error) {
	rows, err := g.attendance.ListByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	if employeeID == nil {
		return rows, nil
	}
	filtered := rows[:0:0]
	for _, r := range rows {
		if r.EmployeeID != nil && *r.EmployeeID == *employeeID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func dedupKey(t notification.GenerateType, userID string, day time.Time) *string {
	key := notification.DedupKey(t, userID, day)
	return &key
}

func (g *generator) send(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	if _, err := g.notifier.CreateMany(ctx, reqs); err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	return nil
}

func (g *generator) lateArrivals(ctx context.Context, day time.Time, employeeID *string) (notification.GenerateResult, error) {
	rows, err := g.records(ctx, day, employeeID)
	if err != nil {
		return notification.GenerateResult{}, err
	}

	var reqs []notification.CreateNotificationRequest
	for _, r := range rows {
		if r.CheckIn.IsZero() || !r.IsLate(g.loc) {
			continue
		}
		reqs = append(reqs, notification.CreateNotificationRequest{
			UserID:   r.UserID,
			Title:    "Late Arrival Notice",
			Message:  fmt.Sprintf("You clocked in late today at %s", r.CheckIn.In(g.loc).Format("15:04")),
			Type:     notification.TypeWarning,
			DedupKey: dedupKey(notification.GenerateLateArrival, r.UserID, day),
		})
	}
	if err := g.send(ctx, reqs); err != nil {
		return notification.GenerateResult{}, err
	}

	count := len(reqs)
	return notification.GenerateResult{
		Success:      true,
		LateArrivals: &count,
		Message:      fmt.Sprintf("Processed %d late arrival notifications", count),
	}, nil
}

func (g *generator) absences(ctx context.Context, day time.Time, employeeID *string) (notification.GenerateResult, error) {
	employees, err := g.employees.ListActive(ctx)
	if err != nil {
		return notification.GenerateResult{}, fmt.Errorf("failed to load employees: %w", err)
	}
	rows, err := g.records(ctx, day, nil)
	if err != nil {
		return notification.GenerateResult{}, err
	}

	attended := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		attended[r.UserID] = struct{}{}
	}

	var absent []employee.Employee
	for _, e := range employees {
		if e.UserID == nil {
			continue
		}
		if employeeID != nil && e.ID != *employeeID {
			continue
		}
		if _, ok := attended[*e.UserID]; !ok {
			absent = append(absent, e)
		}
	}

	if g.now().In(g.loc).Hour() >= notification.AbsenceReminderHour {
		reqs := make([]notification.CreateNotificationRequest, 0, len(absent))
		for _, e := range absent {
			reqs = append(reqs, notification.CreateNotificationRequest{
				UserID:   *e.UserID,
				Title:    "Attendance Reminder",
				Message:  "You have not clocked in today. Please update your attendance status.",
				Type:     notification.TypeInfo,
				DedupKey: dedupKey(notification.GenerateAbsent, *e.UserID, day),
			})
		}
		if err := g.send(ctx, reqs); err != nil {
			return notification.GenerateResult{}, err
		}
	}

	count := len(absent)
	return notification.GenerateResult{
		Success:     true,
		AbsentCount: &count,
		Message:     fmt.Sprintf("Processed %d absence notifications", count),
	}, nil
}

func (g *generator) overtime(ctx context.Context, day time.Time, employeeID *string) (notification.GenerateResult, error) {
	rows, err := g.records(ctx, day, employeeID)
	if err != nil {
		return notification.GenerateResult{}, err
	}

	var reqs []notification.CreateNotificationRequest
	for _, r := range rows {
		if r.IsOpen() {
			continue
		}
		hours := r.RawHours()
		if hours < notification.OvertimeHours {
			continue
		}
		reqs = append(reqs, notification.CreateNotificationRequest{
			UserID:   r.UserID,
			Title:    "Overtime Logged",
			Message:  fmt.Sprintf("You worked %.1f hours today. Please ensure overtime is approved.", hours),
			Type:     notification.TypeInfo,
			DedupKey: dedupKey(notification.GenerateOvertimeAlert, r.UserID, day),
		})
	}
	if err := g.send(ctx, reqs); err != nil {
		return notification.GenerateResult{}, err
	}

	count := len(reqs)
	return notification.GenerateResult{
		Success:       true,
		OvertimeCount: &count,
		Message:       fmt.Sprintf("Processed %d overtime alerts", count),
	}, nil
}
