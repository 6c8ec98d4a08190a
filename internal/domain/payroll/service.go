package payroll

import "context"

type PayrollService interface {
	// Payroll runs
	ListRuns(ctx context.Context) ([]PayrollRun, error)
	CreateRun(ctx context.Context, createdBy string, req CreatePayrollRunRequest) (PayrollRun, error)
	// ProcessPayroll moves the run's pending payslips to processed and marks
	// the run completed in one transaction.
	ProcessPayroll(ctx context.Context, runID string) (ProcessPayrollResponse, error)

	// Payslips
	ListPayslips(ctx context.Context, filter PayslipFilter) ([]Payslip, error)
	ListMyPayslips(ctx context.Context, userID string) ([]Payslip, error)
	GetPayslip(ctx context.Context, id string) (Payslip, error)
	CreatePayslip(ctx context.Context, req CreatePayslipRequest) (Payslip, error)
	UpdatePayslipStatus(ctx context.Context, id string, req UpdatePayslipStatusRequest) (Payslip, error)

	// Salary components
	ListComponents(ctx context.Context) ([]SalaryComponent, error)
	UpsertComponent(ctx context.Context, createdBy string, req UpsertSalaryComponentRequest) (SalaryComponent, error)
}
