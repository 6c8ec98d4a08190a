package payroll

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(dec("5000"),
		LineItems{{Name: "Overtime", Amount: dec("250.50")}},
		LineItems{{Name: "Tax", Amount: dec("500")}, {Name: "Insurance", Amount: dec("120.25")}},
	)

	assert.True(t, totals.Gross.Equal(dec("5250.50")), totals.Gross.String())
	assert.True(t, totals.Deductions.Equal(dec("620.25")), totals.Deductions.String())
	assert.True(t, totals.Net.Equal(dec("4630.25")), totals.Net.String())
}

func TestComputeTotals_NoItems(t *testing.T) {
	totals := ComputeTotals(dec("1000"), nil, nil)
	assert.True(t, totals.Gross.Equal(dec("1000")))
	assert.True(t, totals.Deductions.IsZero())
	assert.True(t, totals.Net.Equal(dec("1000")))
}

func TestPaidDateFor(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	paid := PaidDateFor(PayslipStatusPaid, now)
	require.NotNil(t, paid)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *paid)

	for _, status := range []PayslipStatus{PayslipStatusPending, PayslipStatusProcessed, PayslipStatusCancelled} {
		assert.Nil(t, PaidDateFor(status, now), status)
	}
}

func TestApplyComponents(t *testing.T) {
	components := []SalaryComponent{
		{Name: "Transport", Type: ComponentTypeEarning, CalculationType: CalculationFixed, Value: decPtr("300"), IsActive: true},
		{Name: "Pension", Type: ComponentTypeDeduction, CalculationType: CalculationPercentage, Percentage: decPtr("2.5"), IsActive: true},
		{Name: "Health", Type: ComponentTypeBenefit, CalculationType: CalculationFixed, Value: decPtr("150"), IsActive: true},
		{Name: "Bonus", Type: ComponentTypeEarning, CalculationType: CalculationVariable, IsActive: true},
		{Name: "Legacy", Type: ComponentTypeEarning, CalculationType: CalculationFixed, Value: decPtr("99"), IsActive: false},
	}

	earnings, deductions, benefits := ApplyComponents(dec("4000"), components)

	require.Len(t, earnings, 1)
	assert.Equal(t, "Transport", earnings[0].Name)
	require.Len(t, deductions, 1)
	assert.True(t, deductions[0].Amount.Equal(dec("100")), deductions[0].Amount.String())
	require.Len(t, benefits, 1)
	assert.Equal(t, "Health", benefits[0].Name)
}

func TestLineItems_Scan(t *testing.T) {
	var items LineItems
	require.NoError(t, items.Scan([]byte(`[{"name":"Tax","amount":"12.5"}]`)))
	require.Len(t, items, 1)
	assert.True(t, items[0].Amount.Equal(dec("12.5")))

	require.NoError(t, items.Scan(nil))
	assert.Empty(t, items)

	assert.Error(t, items.Scan(42))
}

func TestRenderText(t *testing.T) {
	code := "EMP-001"
	p := Payslip{
		EmployeeName:    "Jane Doe",
		EmployeeCode:    &code,
		PayPeriodStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:          PayslipStatusPaid,
		BaseSalary:      dec("5000"),
		Earnings:        LineItems{{Name: "Overtime", Amount: dec("1234.5")}},
		Deductions:      LineItems{{Name: "Tax", Amount: dec("500")}},
		GrossPay:        dec("6234.5"),
		TotalDeductions: dec("500"),
		NetPay:          dec("5734.5"),
	}

	text := RenderText(p)
	assert.True(t, strings.HasPrefix(text, "PAYSLIP\n"))
	assert.Contains(t, text, "Employee Code: EMP-001")
	assert.Contains(t, text, "Pay Period: 2024-01-01 to 2024-01-31")
	assert.Contains(t, text, "  Overtime: 1,234.50")
	assert.Contains(t, text, "Net Pay: 5,734.50")
	assert.NotContains(t, text, "BENEFITS")
}
