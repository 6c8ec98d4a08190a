package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayslip(t *testing.T) {
	out, err := Payslip(payroll.Payslip{
		EmployeeName:   "Jane Doe",
		PayPeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:         payroll.PayslipStatusProcessed,
		BaseSalary:     decimal.NewFromInt(5000),
		Earnings:       payroll.LineItems{{Name: "Overtime", Amount: decimal.NewFromInt(200)}},
		GrossPay:       decimal.NewFromInt(5200),
		NetPay:         decimal.NewFromInt(5200),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
