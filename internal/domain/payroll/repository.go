package payroll

import (
	"context"
	"time"
)

type PayrollRunRepository interface {
	List(ctx context.Context) ([]PayrollRun, error)
	GetByID(ctx context.Context, id string) (PayrollRun, error)
	Create(ctx context.Context, run PayrollRun) (PayrollRun, error)
	UpdateStatus(ctx context.Context, id string, status RunStatus) error
	UpdateTotals(ctx context.Context, id string, totals RunTotals) error
}

type PayslipRepository interface {
	List(ctx context.Context, filter PayslipFilter) ([]Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	Create(ctx context.Context, payslip Payslip) (Payslip, error)
	UpdateStatus(ctx context.Context, id string, status PayslipStatus, paidDate *time.Time) (Payslip, error)

	// MarkProcessedForRun moves every pending payslip of the run to processed.
	MarkProcessedForRun(ctx context.Context, runID string) (int64, error)
	TotalsForRun(ctx context.Context, runID string) (RunTotals, error)
}

type SalaryComponentRepository interface {
	List(ctx context.Context) ([]SalaryComponent, error)
	ListActive(ctx context.Context) ([]SalaryComponent, error)
	// Upsert inserts the component or updates the row with the same name.
	Upsert(ctx context.Context, component SalaryComponent) (SalaryComponent, error)
}
