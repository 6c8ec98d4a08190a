package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `id, name, description, days_allowed, color, is_active, created_at, updated_at`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(&lt.ID, &lt.Name, &lt.Description, &lt.DaysAllowed, &lt.Color, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, err
}

// ListActive implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) ListActive(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []leave.LeaveType{}
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeaveType(q.QueryRow(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE id = $1`, id))
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_types (name, description, days_allowed, color, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + leaveTypeColumns

	created, err := scanLeaveType(q.QueryRow(ctx, query, lt.Name, lt.Description, lt.DaysAllowed, lt.Color, lt.IsActive))
	if isUniqueViolation(err) {
		return leave.LeaveType{}, leave.ErrLeaveTypeExists
	}
	return created, err
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_types
		SET name = $2, description = $3, days_allowed = $4, color = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leaveTypeColumns

	updated, err := scanLeaveType(q.QueryRow(ctx, query, lt.ID, lt.Name, lt.Description, lt.DaysAllowed, lt.Color, lt.IsActive))
	if isUniqueViolation(err) {
		return leave.LeaveType{}, leave.ErrLeaveTypeExists
	}
	return updated, err
}

// Delete implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.user_id, lr.employee_id, e.full_name, lr.leave_type, lr.start_date, lr.end_date,
		lr.days_requested, lr.reason, lr.status, lr.applied_date, lr.reviewed_by, lr.reviewed_at,
		lr.created_at, lr.updated_at
	FROM leave_requests lr
	LEFT JOIN employees e ON e.id = lr.employee_id`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.UserID, &lr.EmployeeID, &lr.EmployeeName, &lr.LeaveType, &lr.StartDate, &lr.EndDate,
		&lr.DaysRequested, &lr.Reason, &lr.Status, &lr.AppliedDate, &lr.ReviewedBy, &lr.ReviewedAt,
		&lr.CreatedAt, &lr.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("lr.user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", len(args)))
	}

	query := leaveRequestSelect
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY lr.applied_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// Search implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Search(ctx context.Context, userID string, term string, limit int) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := leaveRequestSelect + `
		WHERE lr.user_id = $1 AND (lr.leave_type ILIKE $2 ESCAPE '\' OR lr.reason ILIKE $2 ESCAPE '\')
		ORDER BY lr.applied_date DESC
		LIMIT $3`

	rows, err := q.Query(ctx, query, userID, containsPattern(term), limit)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_requests (user_id, employee_id, leave_type, start_date, end_date, days_requested, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id string
	if err := q.QueryRow(ctx, query,
		lr.UserID, lr.EmployeeID, lr.LeaveType, lr.StartDate, lr.EndDate, lr.DaysRequested, lr.Reason, lr.Status,
	).Scan(&id); err != nil {
		return leave.LeaveRequest{}, err
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, reviewedBy string, reviewedAt time.Time) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $1`, id, status, reviewedBy, reviewedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if tag.RowsAffected() == 0 {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// DeleteMany implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `
	id, user_id, employee_id, leave_type, year, total_days, used_days, remaining_days, created_at, updated_at`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(&b.ID, &b.UserID, &b.EmployeeID, &b.LeaveType, &b.Year, &b.TotalDays, &b.UsedDays, &b.RemainingDays, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
	}
	return b, err
}

// List implements leave.LeaveBalanceRepository. A nil userID lists every user.
func (r *leaveBalanceRepositoryImpl) List(ctx context.Context, year int, userID *string) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE year = $1 AND ($2::uuid IS NULL OR user_id = $2)
		ORDER BY leave_type`

	rows, err := q.Query(ctx, query, year, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := []leave.LeaveBalance{}
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// GetByID implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeaveBalance(q.QueryRow(ctx, `SELECT `+leaveBalanceColumns+` FROM leave_balances WHERE id = $1`, id))
}

// Create implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_balances (user_id, employee_id, leave_type, year, total_days, used_days, remaining_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + leaveBalanceColumns

	created, err := scanLeaveBalance(q.QueryRow(ctx, query,
		b.UserID, b.EmployeeID, b.LeaveType, b.Year, b.TotalDays, b.UsedDays, b.RemainingDays))
	if isUniqueViolation(err) {
		return leave.LeaveBalance{}, leave.ErrLeaveBalanceExists
	}
	return created, err
}

// Update implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Update(ctx context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_balances
		SET total_days = $2, used_days = $3, remaining_days = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leaveBalanceColumns

	return scanLeaveBalance(q.QueryRow(ctx, query, b.ID, b.TotalDays, b.UsedDays, b.RemainingDays))
}

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) leave.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `id, name, date, type, description, created_at, updated_at`

func scanHoliday(row pgx.Row) (leave.Holiday, error) {
	var h leave.Holiday
	err := row.Scan(&h.ID, &h.Name, &h.Date, &h.Type, &h.Description, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Holiday{}, leave.ErrHolidayNotFound
	}
	return h, err
}

// List implements leave.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+holidayColumns+` FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := []leave.Holiday{}
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// GetByID implements leave.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	return scanHoliday(q.QueryRow(ctx, `SELECT `+holidayColumns+` FROM holidays WHERE id = $1`, id))
}

// Create implements leave.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h leave.Holiday) (leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO holidays (name, date, type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + holidayColumns
	return scanHoliday(q.QueryRow(ctx, query, h.Name, h.Date, h.Type, h.Description))
}

// Update implements leave.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h leave.Holiday) (leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE holidays
		SET name = $2, date = $3, type = $4, description = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + holidayColumns
	return scanHoliday(q.QueryRow(ctx, query, h.ID, h.Name, h.Date, h.Type, h.Description))
}

// Delete implements leave.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrHolidayNotFound
	}
	return nil
}
