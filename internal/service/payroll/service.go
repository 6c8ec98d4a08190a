package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/ems-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	withTx        postgresql.TxRunner
	runRepo       payroll.PayrollRunRepository
	payslipRepo   payroll.PayslipRepository
	componentRepo payroll.SalaryComponentRepository
	employeeRepo  employee.EmployeeRepository
	cache         *cache.Cache
	now           func() time.Time
}

func NewPayrollService(
	withTx postgresql.TxRunner,
	runRepo payroll.PayrollRunRepository,
	payslipRepo payroll.PayslipRepository,
	componentRepo payroll.SalaryComponentRepository,
	employeeRepo employee.EmployeeRepository,
	c *cache.Cache,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		withTx:        withTx,
		runRepo:       runRepo,
		payslipRepo:   payslipRepo,
		componentRepo: componentRepo,
		employeeRepo:  employeeRepo,
		cache:         c,
		now:           time.Now,
	}
}

// ========== PAYROLL RUNS ==========

func (s *PayrollServiceImpl) ListRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	return cache.Fetch(ctx, s.cache, cache.All(cache.PayrollRuns), s.runRepo.List)
}

func (s *PayrollServiceImpl) CreateRun(ctx context.Context, createdBy string, req payroll.CreatePayrollRunRequest) (payroll.PayrollRun, error) {
	start, end, payment := req.Dates()
	created, err := s.runRepo.Create(ctx, payroll.PayrollRun{
		UserID:      createdBy,
		PeriodStart: start,
		PeriodEnd:   end,
		PaymentDate: payment,
		Status:      payroll.RunStatusDraft,
		Notes:       req.Notes,
	})
	if err != nil {
		return payroll.PayrollRun{}, err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.PayrollRuns))
	return created, nil
}

func (s *PayrollServiceImpl) ProcessPayroll(ctx context.Context, runID string) (payroll.ProcessPayrollResponse, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return payroll.ProcessPayrollResponse{}, err
	}
	if run.Status == payroll.RunStatusCompleted || run.Status == payroll.RunStatusCancelled {
		return payroll.ProcessPayrollResponse{}, payroll.ErrPayrollRunClosed
	}

	var processed int64
	err = s.withTx(ctx, func(txCtx context.Context) error {
		n, err := s.payslipRepo.MarkProcessedForRun(txCtx, runID)
		if err != nil {
			return fmt.Errorf("failed to process payslips: %w", err)
		}
		processed = n

		totals, err := s.payslipRepo.TotalsForRun(txCtx, runID)
		if err != nil {
			return fmt.Errorf("failed to total payroll run: %w", err)
		}
		if err := s.runRepo.UpdateTotals(txCtx, runID, totals); err != nil {
			return err
		}
		return s.runRepo.UpdateStatus(txCtx, runID, payroll.RunStatusCompleted)
	})
	if err != nil {
		return payroll.ProcessPayrollResponse{}, err
	}

	s.cache.InvalidateOrLog(ctx, cache.All(cache.PayrollRuns), cache.All(cache.Payslips))
	slog.Info("Payroll processed", "run_id", runID, "payslips", processed)

	run, err = s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return payroll.ProcessPayrollResponse{}, err
	}
	return payroll.ProcessPayrollResponse{Run: run, Processed: processed}, nil
}

// ========== PAYSLIPS ==========

func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	if filter != (payroll.PayslipFilter{}) {
		return s.payslipRepo.List(ctx, filter)
	}
	return cache.Fetch(ctx, s.cache, cache.All(cache.Payslips), func(ctx context.Context) ([]payroll.Payslip, error) {
		return s.payslipRepo.List(ctx, filter)
	})
}

func (s *PayrollServiceImpl) ListMyPayslips(ctx context.Context, userID string) ([]payroll.Payslip, error) {
	return cache.Fetch(ctx, s.cache, cache.User(cache.Payslips, userID), func(ctx context.Context) ([]payroll.Payslip, error) {
		return s.payslipRepo.List(ctx, payroll.PayslipFilter{UserID: &userID})
	})
}

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	return s.payslipRepo.GetByID(ctx, id)
}

func (s *PayrollServiceImpl) CreatePayslip(ctx context.Context, req payroll.CreatePayslipRequest) (payroll.Payslip, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return payroll.Payslip{}, payroll.ErrEmployeeNotFound
	}
	if err != nil {
		return payroll.Payslip{}, err
	}
	if emp.UserID == nil {
		return payroll.Payslip{}, payroll.ErrEmployeeNotLinked
	}

	if req.PayrollRunID != nil {
		run, err := s.runRepo.GetByID(ctx, *req.PayrollRunID)
		if err != nil {
			return payroll.Payslip{}, err
		}
		if run.Status == payroll.RunStatusCompleted || run.Status == payroll.RunStatusCancelled {
			return payroll.Payslip{}, payroll.ErrPayrollRunClosed
		}
	}

	base := emp.BaseSalary
	if req.BaseSalary != nil {
		base = *req.BaseSalary
	}

	earnings := append(payroll.LineItems{}, req.Earnings...)
	deductions := append(payroll.LineItems{}, req.Deductions...)
	benefits := append(payroll.LineItems{}, req.Benefits...)
	if req.UseComponents {
		components, err := s.componentRepo.ListActive(ctx)
		if err != nil {
			return payroll.Payslip{}, fmt.Errorf("failed to load salary components: %w", err)
		}
		e, d, b := payroll.ApplyComponents(base, components)
		earnings = append(earnings, e...)
		deductions = append(deductions, d...)
		benefits = append(benefits, b...)
	}

	totals := payroll.ComputeTotals(base, earnings, deductions)
	start, end := req.Period()

	created, err := s.payslipRepo.Create(ctx, payroll.Payslip{
		UserID:          *emp.UserID,
		EmployeeID:      &emp.ID,
		PayrollRunID:    req.PayrollRunID,
		EmployeeName:    emp.FullName,
		PayPeriodStart:  start,
		PayPeriodEnd:    end,
		BaseSalary:      base,
		Earnings:        earnings,
		Deductions:      deductions,
		Benefits:        benefits,
		GrossPay:        totals.Gross,
		TotalDeductions: totals.Deductions,
		NetPay:          totals.Net,
		PaymentMethod:   req.PaymentMethod,
		BankAccount:     req.BankAccount,
		Status:          payroll.PayslipStatusPending,
		Notes:           req.Notes,
	})
	if err != nil {
		return payroll.Payslip{}, err
	}

	s.cache.InvalidateOrLog(ctx, cache.All(cache.Payslips), cache.User(cache.Payslips, created.UserID))
	return created, nil
}

// UpdatePayslipStatus sets paid_date to today for paid payslips and clears
// it for every other status.
func (s *PayrollServiceImpl) UpdatePayslipStatus(ctx context.Context, id string, req payroll.UpdatePayslipStatusRequest) (payroll.Payslip, error) {
	updated, err := s.payslipRepo.UpdateStatus(ctx, id, req.Status, payroll.PaidDateFor(req.Status, s.now()))
	if err != nil {
		return payroll.Payslip{}, err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.Payslips), cache.User(cache.Payslips, updated.UserID))
	return updated, nil
}

// ========== SALARY COMPONENTS ==========

func (s *PayrollServiceImpl) ListComponents(ctx context.Context) ([]payroll.SalaryComponent, error) {
	return cache.Fetch(ctx, s.cache, cache.All(cache.SalaryComponents), s.componentRepo.List)
}

func (s *PayrollServiceImpl) UpsertComponent(ctx context.Context, createdBy string, req payroll.UpsertSalaryComponentRequest) (payroll.SalaryComponent, error) {
	component := payroll.SalaryComponent{
		UserID:          createdBy,
		Name:            req.Name,
		Type:            req.Type,
		CalculationType: req.CalculationType,
		Value:           req.Value,
		Percentage:      req.Percentage,
		IsActive:        true,
		IsTaxable:       req.IsTaxable,
		Description:     req.Description,
	}
	if req.IsActive != nil {
		component.IsActive = *req.IsActive
	}

	saved, err := s.componentRepo.Upsert(ctx, component)
	if err != nil {
		return payroll.SalaryComponent{}, err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.SalaryComponents))
	return saved, nil
}
