package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `
	id, user_id, full_name, email, department, position, status, join_date, base_salary,
	phone, address, date_of_birth, manager, profile_picture_url, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.FullName, &e.Email, &e.Department, &e.Position, &e.Status,
		&e.JoinDate, &e.BaseSalary, &e.Phone, &e.Address, &e.DateOfBirth, &e.Manager,
		&e.ProfilePictureURL, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, err
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.Search != "" {
		args = append(args, containsPattern(filter.Search))
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(full_name ILIKE $%d ESCAPE '\' OR email ILIKE $%d ESCAPE '\' OR position ILIKE $%d ESCAPE '\' OR department ILIKE $%d ESCAPE '\')`, n, n, n, n))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE status <> 'Terminated' ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

// Search implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Search(ctx context.Context, term string, limit int) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE full_name ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\'
			OR position ILIKE $1 ESCAPE '\' OR department ILIKE $1 ESCAPE '\'
		ORDER BY full_name
		LIMIT $2`
	rows, err := q.Query(ctx, query, containsPattern(term), limit)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	return scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	return scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE user_id = $1`, userID))
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	return scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE lower(email) = lower($1)`, email))
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO employees (
			user_id, full_name, email, department, position, status, join_date, base_salary,
			phone, address, date_of_birth, manager, profile_picture_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		e.UserID, e.FullName, e.Email, e.Department, e.Position, e.Status, e.JoinDate, e.BaseSalary,
		e.Phone, e.Address, e.DateOfBirth, e.Manager, e.ProfilePictureURL,
	))
	if isUniqueViolation(err) {
		return employee.Employee{}, employee.ErrEmailExists
	}
	return created, err
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE employees SET
			full_name = $2, email = $3, department = $4, position = $5, status = $6,
			join_date = $7, base_salary = $8, phone = $9, address = $10, date_of_birth = $11,
			manager = $12, profile_picture_url = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		e.ID, e.FullName, e.Email, e.Department, e.Position, e.Status,
		e.JoinDate, e.BaseSalary, e.Phone, e.Address, e.DateOfBirth,
		e.Manager, e.ProfilePictureURL,
	))
	if isUniqueViolation(err) {
		return employee.Employee{}, employee.ErrEmailExists
	}
	return updated, err
}

// LinkUser implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) LinkUser(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `UPDATE employees SET user_id = $1, updated_at = NOW() WHERE id = $2`, userID, id)
	if isUniqueViolation(err) {
		return employee.ErrUserAlreadyLinked
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// DeleteMany implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type emergencyContactRepositoryImpl struct {
	db *database.DB
}

func NewEmergencyContactRepository(db *database.DB) employee.EmergencyContactRepository {
	return &emergencyContactRepositoryImpl{db: db}
}

// GetByEmployeeID implements employee.EmergencyContactRepository.
func (r *emergencyContactRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.EmergencyContact, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, name, phone, relationship, created_at, updated_at
		FROM employee_emergency_contacts
		WHERE employee_id = $1`

	var c employee.EmergencyContact
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&c.ID, &c.EmployeeID, &c.Name, &c.Phone, &c.Relationship, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.EmergencyContact{}, employee.ErrEmergencyContactNotFound
	}
	return c, err
}

// Upsert implements employee.EmergencyContactRepository.
func (r *emergencyContactRepositoryImpl) Upsert(ctx context.Context, c employee.EmergencyContact) (employee.EmergencyContact, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO employee_emergency_contacts (employee_id, name, phone, relationship)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			relationship = EXCLUDED.relationship,
			updated_at = NOW()
		RETURNING id, employee_id, name, phone, relationship, created_at, updated_at`

	var saved employee.EmergencyContact
	err := q.QueryRow(ctx, query, c.EmployeeID, c.Name, c.Phone, c.Relationship).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Name, &saved.Phone, &saved.Relationship, &saved.CreatedAt, &saved.UpdatedAt,
	)
	return saved, err
}

type employmentHistoryRepositoryImpl struct {
	db *database.DB
}

func NewEmploymentHistoryRepository(db *database.DB) employee.EmploymentHistoryRepository {
	return &employmentHistoryRepositoryImpl{db: db}
}

// ListByEmployeeID implements employee.EmploymentHistoryRepository.
func (r *employmentHistoryRepositoryImpl) ListByEmployeeID(ctx context.Context, employeeID string) ([]employee.EmploymentHistory, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, title, department, start_date, end_date, is_current, notes, created_at
		FROM employee_employment_history
		WHERE employee_id = $1
		ORDER BY start_date DESC, created_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []employee.EmploymentHistory{}
	for rows.Next() {
		var h employee.EmploymentHistory
		if err := rows.Scan(&h.ID, &h.EmployeeID, &h.Title, &h.Department, &h.StartDate, &h.EndDate, &h.IsCurrent, &h.Notes, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// Create implements employee.EmploymentHistoryRepository.
func (r *employmentHistoryRepositoryImpl) Create(ctx context.Context, h employee.EmploymentHistory) (employee.EmploymentHistory, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO employee_employment_history (employee_id, title, department, start_date, end_date, is_current, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := q.QueryRow(ctx, query, h.EmployeeID, h.Title, h.Department, h.StartDate, h.EndDate, h.IsCurrent, h.Notes).
		Scan(&h.ID, &h.CreatedAt)
	return h, err
}

// CloseCurrent implements employee.EmploymentHistoryRepository.
func (r *employmentHistoryRepositoryImpl) CloseCurrent(ctx context.Context, employeeID string, endDate time.Time) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		UPDATE employee_employment_history
		SET is_current = false, end_date = $2
		WHERE employee_id = $1 AND is_current`, employeeID, endDate)
	return err
}
