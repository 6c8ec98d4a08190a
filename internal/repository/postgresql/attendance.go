package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.user_id, a.employee_id, e.full_name, a.date, a.check_in, a.check_out,
		a.status, a.notes, a.created_at, a.updated_at
	FROM attendance a
	LEFT JOIN employees e ON e.id = a.employee_id`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.UserID, &a.EmployeeID, &a.EmployeeName, &a.Date, &a.CheckIn, &a.CheckOut,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, err
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect
	args := []interface{}{}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" WHERE a.user_id = $%d", len(args))
	}
	query += " ORDER BY a.date DESC, a.check_in DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, attendanceSelect+` WHERE a.date = $1 ORDER BY a.check_in`, date)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

// ListSince implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListSince(ctx context.Context, userID string, since time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, attendanceSelect+` WHERE a.user_id = $1 AND a.date >= $2 ORDER BY a.date DESC`, userID, since)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	return scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
}

// ClockIn implements attendance.AttendanceRepository. The partial unique
// index uq_attendance_open_session arbitrates concurrent clock-ins.
func (r *attendanceRepositoryImpl) ClockIn(ctx context.Context, record attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance (user_id, employee_id, date, check_in, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) WHERE check_out IS NULL DO NOTHING
		RETURNING id`

	var id string
	err := q.QueryRow(ctx, query,
		record.UserID, record.EmployeeID, record.Date, record.CheckIn, record.Status, record.Notes,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, false, nil
	}
	if err != nil {
		return attendance.Attendance{}, false, err
	}

	created, err := r.GetByID(ctx, id)
	return created, err == nil, err
}

// ClockOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ClockOut(ctx context.Context, userID string, at time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendance SET check_out = $2, updated_at = NOW()
		WHERE id = (
			SELECT id FROM attendance
			WHERE user_id = $1 AND check_out IS NULL
			ORDER BY check_in DESC
			LIMIT 1
			FOR UPDATE
		)
		RETURNING id`

	var id string
	err := q.QueryRow(ctx, query, userID, at).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, attendance.ErrNotClockedIn
	}
	if err != nil {
		return attendance.Attendance{}, err
	}
	return r.GetByID(ctx, id)
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE attendance
		SET check_in = $2, check_out = $3, status = $4, notes = $5, updated_at = NOW()
		WHERE id = $1`,
		record.ID, record.CheckIn, record.CheckOut, record.Status, record.Notes)
	if isUniqueViolation(err) {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}
	if err != nil {
		return attendance.Attendance{}, err
	}
	if tag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
