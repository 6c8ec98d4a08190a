package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
)

const (
	listAllLimit  = 100
	listMineLimit = 30
)

type AttendanceServiceImpl struct {
	repo  attendance.AttendanceRepository
	cache *cache.Cache
	loc   *time.Location
	now   func() time.Time
}

// NewAttendanceService creates the attendance service. loc decides the
// calendar day of a check-in and the late threshold.
func NewAttendanceService(repo attendance.AttendanceRepository, c *cache.Cache, loc *time.Location) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		repo:  repo,
		cache: c,
		loc:   loc,
		now:   time.Now,
	}
}

func (s *AttendanceServiceImpl) localNow() time.Time {
	return s.now().In(s.loc)
}

func (s *AttendanceServiceImpl) invalidate(ctx context.Context, userID string) {
	s.cache.InvalidateOrLog(ctx, cache.All(cache.Attendance), cache.User(cache.Attendance, userID))
}

// ListAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	return cache.Fetch(ctx, s.cache, cache.All(cache.Attendance), func(ctx context.Context) ([]attendance.Attendance, error) {
		return s.repo.List(ctx, attendance.ListFilter{Limit: listAllLimit})
	})
}

// ListMine implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	return cache.Fetch(ctx, s.cache, cache.User(cache.Attendance, userID), func(ctx context.Context) ([]attendance.Attendance, error) {
		return s.repo.List(ctx, attendance.ListFilter{UserID: &userID, Limit: listMineLimit})
	})
}

// ClockIn implements attendance.AttendanceService. The insert is a single
// conditional statement, so concurrent clock-ins of one user yield one record.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, actor attendance.Actor, req attendance.ClockInRequest) (attendance.Attendance, error) {
	now := s.localNow()
	record := attendance.Attendance{
		UserID:     actor.UserID,
		EmployeeID: actor.EmployeeID,
		Date:       attendance.StartOfDay(now),
		CheckIn:    now,
		Status:     attendance.StatusPresent,
		Notes:      req.Notes,
	}
	if record.IsLate(s.loc) {
		record.Status = attendance.StatusLate
	}

	created, inserted, err := s.repo.ClockIn(ctx, record)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if !inserted {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}

	s.invalidate(ctx, actor.UserID)
	slog.Info("Clocked in", "user_id", actor.UserID, "attendance_id", created.ID, "status", created.Status)
	return created, nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, actor attendance.Actor) (attendance.ClockOutResponse, error) {
	closed, err := s.repo.ClockOut(ctx, actor.UserID, s.localNow())
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	s.invalidate(ctx, actor.UserID)
	return attendance.ClockOutResponse{Attendance: closed, Hours: closed.Hours()}, nil
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.Attendance, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return attendance.Attendance{}, err
	}

	checkIn, checkOut := req.Times()
	if checkIn != nil {
		record.CheckIn = *checkIn
	}
	if checkOut != nil {
		record.CheckOut = checkOut
	}
	if record.CheckOut != nil && !record.CheckOut.After(record.CheckIn) {
		return attendance.Attendance{}, attendance.ErrCheckOutBeforeIn
	}
	if req.Status != nil {
		record.Status = *req.Status
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return attendance.Attendance{}, err
	}
	s.invalidate(ctx, updated.UserID)
	return updated, nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, record.UserID)
	return nil
}

// MyStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MyStats(ctx context.Context, userID string) (attendance.MyStats, error) {
	now := s.localNow()
	key := cache.User(cache.AttendanceStats, userID).On(attendance.StartOfDay(now))
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (attendance.MyStats, error) {
		records, err := s.repo.ListSince(ctx, userID, attendance.StartOfWeek(now))
		if err != nil {
			return attendance.MyStats{}, err
		}
		return attendance.ComputeMyStats(records, now), nil
	})
}

// AdminStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AdminStats(ctx context.Context) (attendance.AdminStats, error) {
	today := attendance.StartOfDay(s.localNow())
	return cache.Fetch(ctx, s.cache, cache.Day(cache.AttendanceStats, today), func(ctx context.Context) (attendance.AdminStats, error) {
		records, err := s.repo.ListByDate(ctx, today)
		if err != nil {
			return attendance.AdminStats{}, err
		}
		return attendance.ComputeAdminStats(records, s.loc), nil
	})
}
