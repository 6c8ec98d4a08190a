package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRunRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.PayrollRunRepository {
	return &payrollRunRepositoryImpl{db: db}
}

const payrollRunColumns = `
	id, user_id, period_start, period_end, payment_date, status, total_employees,
	total_gross, total_deductions, total_net, notes, created_at, updated_at`

func scanPayrollRun(row pgx.Row) (payroll.PayrollRun, error) {
	var run payroll.PayrollRun
	err := row.Scan(
		&run.ID, &run.UserID, &run.PeriodStart, &run.PeriodEnd, &run.PaymentDate, &run.Status, &run.TotalEmployees,
		&run.TotalGross, &run.TotalDeductions, &run.TotalNet, &run.Notes, &run.CreatedAt, &run.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollRun{}, payroll.ErrPayrollRunNotFound
	}
	return run, err
}

// List implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) List(ctx context.Context) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+payrollRunColumns+` FROM payroll_runs ORDER BY period_start DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []payroll.PayrollRun{}
	for rows.Next() {
		run, err := scanPayrollRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetByID implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)
	return scanPayrollRun(q.QueryRow(ctx, `SELECT `+payrollRunColumns+` FROM payroll_runs WHERE id = $1`, id))
}

// Create implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) Create(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO payroll_runs (user_id, period_start, period_end, payment_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + payrollRunColumns
	return scanPayrollRun(q.QueryRow(ctx, query, run.UserID, run.PeriodStart, run.PeriodEnd, run.PaymentDate, run.Status, run.Notes))
}

// UpdateStatus implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) UpdateStatus(ctx context.Context, id string, status payroll.RunStatus) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `UPDATE payroll_runs SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRunNotFound
	}
	return nil
}

// UpdateTotals implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) UpdateTotals(ctx context.Context, id string, totals payroll.RunTotals) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE payroll_runs
		SET total_employees = $2, total_gross = $3, total_deductions = $4, total_net = $5, updated_at = NOW()
		WHERE id = $1`,
		id, totals.Employees, totals.Gross, totals.Deductions, totals.Net)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRunNotFound
	}
	return nil
}

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

const payslipColumns = `
	id, user_id, employee_id, payroll_run_id, employee_name, employee_code, pay_period_start, pay_period_end,
	base_salary, earnings, deductions, benefits, gross_pay, total_deductions, net_pay,
	payment_method, bank_account, status, paid_date, notes, created_at, updated_at`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.UserID, &p.EmployeeID, &p.PayrollRunID, &p.EmployeeName, &p.EmployeeCode, &p.PayPeriodStart, &p.PayPeriodEnd,
		&p.BaseSalary, &p.Earnings, &p.Deductions, &p.Benefits, &p.GrossPay, &p.TotalDeductions, &p.NetPay,
		&p.PaymentMethod, &p.BankAccount, &p.Status, &p.PaidDate, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return p, err
}

// List implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) List(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.PayrollRunID != nil {
		args = append(args, *filter.PayrollRunID)
		conditions = append(conditions, fmt.Sprintf("payroll_run_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + payslipColumns + ` FROM payslips`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY pay_period_start DESC, employee_name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payslips := []payroll.Payslip{}
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)
	return scanPayslip(q.QueryRow(ctx, `SELECT `+payslipColumns+` FROM payslips WHERE id = $1`, id))
}

// Create implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) Create(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO payslips (
			user_id, employee_id, payroll_run_id, employee_name, employee_code, pay_period_start, pay_period_end,
			base_salary, earnings, deductions, benefits, gross_pay, total_deductions, net_pay,
			payment_method, bank_account, status, paid_date, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + payslipColumns

	return scanPayslip(q.QueryRow(ctx, query,
		p.UserID, p.EmployeeID, p.PayrollRunID, p.EmployeeName, p.EmployeeCode, p.PayPeriodStart, p.PayPeriodEnd,
		p.BaseSalary, p.Earnings, p.Deductions, p.Benefits, p.GrossPay, p.TotalDeductions, p.NetPay,
		p.PaymentMethod, p.BankAccount, p.Status, p.PaidDate, p.Notes,
	))
}

// UpdateStatus implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) UpdateStatus(ctx context.Context, id string, status payroll.PayslipStatus, paidDate *time.Time) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE payslips SET status = $2, paid_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + payslipColumns
	return scanPayslip(q.QueryRow(ctx, query, id, status, paidDate))
}

// MarkProcessedForRun implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) MarkProcessedForRun(ctx context.Context, runID string) (int64, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE payslips SET status = 'processed', updated_at = NOW()
		WHERE payroll_run_id = $1 AND status = 'pending'`, runID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// TotalsForRun implements payroll.PayslipRepository. Cancelled payslips
// are left out.
func (r *payslipRepositoryImpl) TotalsForRun(ctx context.Context, runID string) (payroll.RunTotals, error) {
	q := GetQuerier(ctx, r.db)
	var totals payroll.RunTotals
	err := q.QueryRow(ctx, `
		SELECT COUNT(DISTINCT user_id),
			COALESCE(SUM(gross_pay), 0),
			COALESCE(SUM(total_deductions), 0),
			COALESCE(SUM(net_pay), 0)
		FROM payslips
		WHERE payroll_run_id = $1 AND status <> 'cancelled'`, runID,
	).Scan(&totals.Employees, &totals.Gross, &totals.Deductions, &totals.Net)
	return totals, err
}

type salaryComponentRepositoryImpl struct {
	db *database.DB
}

func NewSalaryComponentRepository(db *database.DB) payroll.SalaryComponentRepository {
	return &salaryComponentRepositoryImpl{db: db}
}

const salaryComponentColumns = `
	id, user_id, name, type, calculation_type, value, percentage, is_active, is_taxable, description, created_at, updated_at`

func scanSalaryComponent(row pgx.Row) (payroll.SalaryComponent, error) {
	var c payroll.SalaryComponent
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Type, &c.CalculationType, &c.Value, &c.Percentage,
		&c.IsActive, &c.IsTaxable, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.SalaryComponent{}, payroll.ErrSalaryComponentNotFound
	}
	return c, err
}

func (r *salaryComponentRepositoryImpl) list(ctx context.Context, where string) ([]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+salaryComponentColumns+` FROM salary_components `+where+` ORDER BY type, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	components := []payroll.SalaryComponent{}
	for rows.Next() {
		c, err := scanSalaryComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

// List implements payroll.SalaryComponentRepository.
func (r *salaryComponentRepositoryImpl) List(ctx context.Context) ([]payroll.SalaryComponent, error) {
	return r.list(ctx, "")
}

// ListActive implements payroll.SalaryComponentRepository.
func (r *salaryComponentRepositoryImpl) ListActive(ctx context.Context) ([]payroll.SalaryComponent, error) {
	return r.list(ctx, "WHERE is_active")
}

// Upsert implements payroll.SalaryComponentRepository.
func (r *salaryComponentRepositoryImpl) Upsert(ctx context.Context, c payroll.SalaryComponent) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO salary_components (user_id, name, type, calculation_type, value, percentage, is_active, is_taxable, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name) DO UPDATE SET
			type = EXCLUDED.type,
			calculation_type = EXCLUDED.calculation_type,
			value = EXCLUDED.value,
			percentage = EXCLUDED.percentage,
			is_active = EXCLUDED.is_active,
			is_taxable = EXCLUDED.is_taxable,
			description = EXCLUDED.description,
			updated_at = NOW()
		RETURNING ` + salaryComponentColumns

	return scanSalaryComponent(q.QueryRow(ctx, query,
		c.UserID, c.Name, c.Type, c.CalculationType, c.Value, c.Percentage, c.IsActive, c.IsTaxable, c.Description))
}
