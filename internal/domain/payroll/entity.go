package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusDraft      RunStatus = "draft"
	RunStatusProcessing RunStatus = "processing"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusCancelled  RunStatus = "cancelled"
)

// PayslipStatus enum
type PayslipStatus string

const (
	PayslipStatusPending   PayslipStatus = "pending"
	PayslipStatusProcessed PayslipStatus = "processed"
	PayslipStatusPaid      PayslipStatus = "paid"
	PayslipStatusCancelled PayslipStatus = "cancelled"
)

// ComponentType enum
type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "earning"
	ComponentTypeDeduction ComponentType = "deduction"
	ComponentTypeBenefit   ComponentType = "benefit"
)

// CalculationType enum
type CalculationType string

const (
	CalculationFixed      CalculationType = "fixed"
	CalculationPercentage CalculationType = "percentage"
	CalculationVariable   CalculationType = "variable"
)

// LineItem is one named amount on a payslip.
type LineItem struct {
	Name   string          `json:"name" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// LineItems is stored as a JSONB array.
type LineItems []LineItem

// Total sums the amounts.
func (l LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.Amount)
	}
	return total
}

// Value implements driver.Valuer for database storage
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for database retrieval
func (l *LineItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = LineItems{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("failed to scan LineItems: invalid type")
	}
}

// PayrollRun groups payslips of one pay period.
type PayrollRun struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	PaymentDate     time.Time       `json:"payment_date"`
	Status          RunStatus       `json:"status"`
	TotalEmployees  int             `json:"total_employees"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// RunTotals aggregates the payslips of a run.
type RunTotals struct {
	Employees  int
	Gross      decimal.Decimal
	Deductions decimal.Decimal
	Net        decimal.Decimal
}

type Payslip struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	EmployeeID      *string         `json:"employee_id,omitempty"`
	PayrollRunID    *string         `json:"payroll_run_id,omitempty"`
	EmployeeName    string          `json:"employee_name"`
	EmployeeCode    *string         `json:"employee_code,omitempty"`
	PayPeriodStart  time.Time       `json:"pay_period_start"`
	PayPeriodEnd    time.Time       `json:"pay_period_end"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	Earnings        LineItems       `json:"earnings"`
	Deductions      LineItems       `json:"deductions"`
	Benefits        LineItems       `json:"benefits"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
	PaymentMethod   *string         `json:"payment_method,omitempty"`
	BankAccount     *string         `json:"bank_account,omitempty"`
	Status          PayslipStatus   `json:"status"`
	PaidDate        *time.Time      `json:"paid_date,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type SalaryComponent struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Name            string           `json:"name"`
	Type            ComponentType    `json:"type"`
	CalculationType CalculationType  `json:"calculation_type"`
	Value           *decimal.Decimal `json:"value,omitempty"`
	Percentage      *decimal.Decimal `json:"percentage,omitempty"`
	IsActive        bool             `json:"is_active"`
	IsTaxable       bool             `json:"is_taxable"`
	Description     *string          `json:"description,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
