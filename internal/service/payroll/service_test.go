package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRuns struct {
	payroll.PayrollRunRepository
	runs map[string]payroll.PayrollRun
}

func (m *memRuns) GetByID(_ context.Context, id string) (payroll.PayrollRun, error) {
	r, ok := m.runs[id]
	if !ok {
		return payroll.PayrollRun{}, payroll.ErrPayrollRunNotFound
	}
	return r, nil
}

func (m *memRuns) UpdateStatus(_ context.Context, id string, status payroll.RunStatus) error {
	r := m.runs[id]
	r.Status = status
	m.runs[id] = r
	return nil
}

func (m *memRuns) UpdateTotals(_ context.Context, id string, totals payroll.RunTotals) error {
	r := m.runs[id]
	r.TotalEmployees = totals.Employees
	r.TotalGross = totals.Gross
	r.TotalDeductions = totals.Deductions
	r.TotalNet = totals.Net
	m.runs[id] = r
	return nil
}

type memPayslips struct {
	payroll.PayslipRepository
	rows      []payroll.Payslip
	totalsErr error
}

func (m *memPayslips) Create(_ context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	p.ID = "ps-1"
	m.rows = append(m.rows, p)
	return p, nil
}

func (m *memPayslips) UpdateStatus(_ context.Context, id string, status payroll.PayslipStatus, paidDate *time.Time) (payroll.Payslip, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Status = status
			m.rows[i].PaidDate = paidDate
			return m.rows[i], nil
		}
	}
	return payroll.Payslip{}, payroll.ErrPayslipNotFound
}

func (m *memPayslips) MarkProcessedForRun(_ context.Context, runID string) (int64, error) {
	var n int64
	for i := range m.rows {
		if m.rows[i].PayrollRunID != nil && *m.rows[i].PayrollRunID == runID && m.rows[i].Status == payroll.PayslipStatusPending {
			m.rows[i].Status = payroll.PayslipStatusProcessed
			n++
		}
	}
	return n, nil
}

func (m *memPayslips) TotalsForRun(_ context.Context, runID string) (payroll.RunTotals, error) {
	if m.totalsErr != nil {
		return payroll.RunTotals{}, m.totalsErr
	}
	totals := payroll.RunTotals{Gross: decimal.Zero, Deductions: decimal.Zero, Net: decimal.Zero}
	users := map[string]bool{}
	for _, p := range m.rows {
		if p.PayrollRunID == nil || *p.PayrollRunID != runID || p.Status == payroll.PayslipStatusCancelled {
			continue
		}
		users[p.UserID] = true
		totals.Gross = totals.Gross.Add(p.GrossPay)
		totals.Deductions = totals.Deductions.Add(p.TotalDeductions)
		totals.Net = totals.Net.Add(p.NetPay)
	}
	totals.Employees = len(users)
	return totals, nil
}

type memComponents struct {
	payroll.SalaryComponentRepository
	active []payroll.SalaryComponent
}

func (m *memComponents) ListActive(context.Context) ([]payroll.SalaryComponent, error) {
	return m.active, nil
}

type memEmployees struct {
	employee.EmployeeRepository
	rows map[string]employee.Employee
}

func (m *memEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := m.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// txSnapshot restores the run and payslip state when fn fails.
type txSnapshot struct {
	runs     *memRuns
	payslips *memPayslips
}

func (s txSnapshot) run(ctx context.Context, fn func(context.Context) error) error {
	runs := make(map[string]payroll.PayrollRun, len(s.runs.runs))
	for k, v := range s.runs.runs {
		runs[k] = v
	}
	rows := append([]payroll.Payslip(nil), s.payslips.rows...)
	if err := fn(ctx); err != nil {
		s.runs.runs = runs
		s.payslips.rows = rows
		return err
	}
	return nil
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newService() (*PayrollServiceImpl, *memRuns, *memPayslips, *memComponents, *memEmployees) {
	runs := &memRuns{runs: map[string]payroll.PayrollRun{}}
	payslips := &memPayslips{}
	components := &memComponents{}
	userID := "u-1"
	employees := &memEmployees{rows: map[string]employee.Employee{
		"e-1": {ID: "e-1", UserID: &userID, FullName: "Jane Doe", BaseSalary: d(5000)},
		"e-2": {ID: "e-2", FullName: "No Account", BaseSalary: d(4000)},
	}}
	tx := txSnapshot{runs: runs, payslips: payslips}
	svc := NewPayrollService(tx.run, runs, payslips, components, employees, cache.New(nil, 0)).(*PayrollServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 1, 31, 15, 0, 0, 0, time.UTC) }
	return svc, runs, payslips, components, employees
}

func payslipRequest(t *testing.T, employeeID string) payroll.CreatePayslipRequest {
	t.Helper()
	return payroll.CreatePayslipRequest{
		EmployeeID:     employeeID,
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-31",
		Earnings:       payroll.LineItems{{Name: "Bonus", Amount: d(500)}},
		Deductions:     payroll.LineItems{{Name: "Tax", Amount: d(800)}},
	}
}

func TestCreatePayslip_ComputesTotals(t *testing.T) {
	svc, _, _, components, _ := newService()
	pct := d(10)
	components.active = []payroll.SalaryComponent{
		{Name: "Pension", Type: payroll.ComponentTypeDeduction, CalculationType: payroll.CalculationPercentage, Percentage: &pct, IsActive: true},
	}

	req := payslipRequest(t, "e-1")
	req.UseComponents = true

	p, err := svc.CreatePayslip(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, "Jane Doe", p.EmployeeName)
	assert.True(t, d(5500).Equal(p.GrossPay))
	assert.True(t, d(1300).Equal(p.TotalDeductions))
	assert.True(t, d(4200).Equal(p.NetPay))
	assert.Len(t, p.Deductions, 2)
	assert.Equal(t, payroll.PayslipStatusPending, p.Status)
}

func TestCreatePayslip_EmployeeErrors(t *testing.T) {
	svc, _, _, _, _ := newService()

	_, err := svc.CreatePayslip(context.Background(), payslipRequest(t, "missing"))
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)

	_, err = svc.CreatePayslip(context.Background(), payslipRequest(t, "e-2"))
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotLinked)
}

func TestUpdatePayslipStatus_PaidDate(t *testing.T) {
	svc, _, payslips, _, _ := newService()
	payslips.rows = []payroll.Payslip{{ID: "ps-1", UserID: "u-1", Status: payroll.PayslipStatusProcessed}}

	paid, err := svc.UpdatePayslipStatus(context.Background(), "ps-1", payroll.UpdatePayslipStatusRequest{Status: payroll.PayslipStatusPaid})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *paid.PaidDate)

	cancelled, err := svc.UpdatePayslipStatus(context.Background(), "ps-1", payroll.UpdatePayslipStatusRequest{Status: payroll.PayslipStatusCancelled})
	require.NoError(t, err)
	assert.Nil(t, cancelled.PaidDate)
}

func TestProcessPayroll(t *testing.T) {
	svc, runs, payslips, _, _ := newService()
	runID := "run-1"
	runs.runs[runID] = payroll.PayrollRun{ID: runID, Status: payroll.RunStatusDraft}
	payslips.rows = []payroll.Payslip{
		{ID: "a", UserID: "u-1", PayrollRunID: &runID, Status: payroll.PayslipStatusPending, GrossPay: d(100), TotalDeductions: d(10), NetPay: d(90)},
		{ID: "b", UserID: "u-2", PayrollRunID: &runID, Status: payroll.PayslipStatusPending, GrossPay: d(200), TotalDeductions: d(20), NetPay: d(180)},
		{ID: "c", UserID: "u-3", PayrollRunID: &runID, Status: payroll.PayslipStatusCancelled, GrossPay: d(999), TotalDeductions: d(0), NetPay: d(999)},
	}

	resp, err := svc.ProcessPayroll(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Processed)
	assert.Equal(t, payroll.RunStatusCompleted, resp.Run.Status)
	assert.Equal(t, 2, resp.Run.TotalEmployees)
	assert.True(t, d(270).Equal(resp.Run.TotalNet))
	assert.Equal(t, payroll.PayslipStatusProcessed, payslips.rows[0].Status)
	assert.Equal(t, payroll.PayslipStatusCancelled, payslips.rows[2].Status)

	_, err = svc.ProcessPayroll(context.Background(), runID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRunClosed)
}

func TestProcessPayroll_FailureLeavesPayslipsPending(t *testing.T) {
	svc, runs, payslips, _, _ := newService()
	runID := "run-1"
	runs.runs[runID] = payroll.PayrollRun{ID: runID, Status: payroll.RunStatusDraft}
	payslips.rows = []payroll.Payslip{{ID: "a", UserID: "u-1", PayrollRunID: &runID, Status: payroll.PayslipStatusPending}}
	payslips.totalsErr = errors.New("connection reset")

	_, err := svc.ProcessPayroll(context.Background(), runID)
	require.Error(t, err)
	assert.Equal(t, payroll.PayslipStatusPending, payslips.rows[0].Status)
	assert.Equal(t, payroll.RunStatusDraft, runs.runs[runID].Status)
}
