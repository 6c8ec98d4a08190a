package payroll

import (
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePayrollRunRequest struct {
	PeriodStart string  `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string  `json:"period_end" validate:"required,datetime=2006-01-02"`
	PaymentDate string  `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=2000"`

	start, end, payment time.Time
}

func (r *CreatePayrollRunRequest) Validate() error {
	errs := validator.StructErrors(r)
	if len(errs) > 0 {
		return errs
	}

	r.start, _ = validator.IsValidDate(r.PeriodStart)
	r.end, _ = validator.IsValidDate(r.PeriodEnd)
	r.payment, _ = validator.IsValidDate(r.PaymentDate)
	if r.end.Before(r.start) {
		errs.Add("period_end", ErrInvalidPeriod.Error())
	}
	return errs.Err()
}

// Dates returns the parsed period and payment dates. Validate must run first.
func (r *CreatePayrollRunRequest) Dates() (start, end, payment time.Time) {
	return r.start, r.end, r.payment
}

type CreatePayslipRequest struct {
	EmployeeID     string           `json:"employee_id" validate:"required,uuid"`
	PayrollRunID   *string          `json:"payroll_run_id,omitempty" validate:"omitempty,uuid"`
	PayPeriodStart string           `json:"pay_period_start" validate:"required,datetime=2006-01-02"`
	PayPeriodEnd   string           `json:"pay_period_end" validate:"required,datetime=2006-01-02"`
	BaseSalary     *decimal.Decimal `json:"base_salary,omitempty"`
	Earnings       LineItems        `json:"earnings" validate:"dive"`
	Deductions     LineItems        `json:"deductions" validate:"dive"`
	Benefits       LineItems        `json:"benefits" validate:"dive"`
	PaymentMethod  *string          `json:"payment_method,omitempty" validate:"omitempty,max=50"`
	BankAccount    *string          `json:"bank_account,omitempty" validate:"omitempty,max=100"`
	Notes          *string          `json:"notes,omitempty" validate:"omitempty,max=2000"`

	// UseComponents appends line items computed from the active salary
	// components to the ones supplied.
	UseComponents bool `json:"use_components"`

	start, end time.Time
}

func (r *CreatePayslipRequest) Validate() error {
	errs := validator.StructErrors(r)
	if len(errs) > 0 {
		return errs
	}

	r.start, _ = validator.IsValidDate(r.PayPeriodStart)
	r.end, _ = validator.IsValidDate(r.PayPeriodEnd)
	if r.end.Before(r.start) {
		errs.Add("pay_period_end", ErrInvalidPeriod.Error())
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "base_salary must not be negative")
	}
	checkItems(&errs, "earnings", r.Earnings)
	checkItems(&errs, "deductions", r.Deductions)
	checkItems(&errs, "benefits", r.Benefits)
	return errs.Err()
}

func checkItems(errs *validator.ValidationErrors, field string, items LineItems) {
	for i, item := range items {
		if item.Amount.IsNegative() {
			errs.Add(field+"["+validator.Itoa(i)+"].amount", "amount must not be negative")
		}
	}
}

// Period returns the parsed pay period. Validate must run first.
func (r *CreatePayslipRequest) Period() (start, end time.Time) {
	return r.start, r.end
}

type UpdatePayslipStatusRequest struct {
	Status PayslipStatus `json:"status" validate:"required,oneof=pending processed paid cancelled"`
}

func (r *UpdatePayslipStatusRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

type UpsertSalaryComponentRequest struct {
	Name            string           `json:"name" validate:"required,max=255"`
	Type            ComponentType    `json:"type" validate:"required,oneof=earning deduction benefit"`
	CalculationType CalculationType  `json:"calculation_type" validate:"required,oneof=fixed percentage variable"`
	Value           *decimal.Decimal `json:"value,omitempty"`
	Percentage      *decimal.Decimal `json:"percentage,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
	IsTaxable       bool             `json:"is_taxable"`
	Description     *string          `json:"description,omitempty"`
}

func (r *UpsertSalaryComponentRequest) Validate() error {
	errs := validator.StructErrors(r)
	switch r.CalculationType {
	case CalculationFixed:
		if r.Value == nil {
			errs.Add("value", "value is required for fixed components")
		}
	case CalculationPercentage:
		if r.Percentage == nil {
			errs.Add("percentage", "percentage is required for percentage components")
		} else if r.Percentage.IsNegative() || r.Percentage.GreaterThan(hundred) {
			errs.Add("percentage", "percentage must be between 0 and 100")
		}
	}
	if r.Value != nil && r.Value.IsNegative() {
		errs.Add("value", "value must not be negative")
	}
	return errs.Err()
}

type PayslipFilter struct {
	UserID       *string
	EmployeeID   *string
	PayrollRunID *string
	Status       *PayslipStatus
}

type ProcessPayrollResponse struct {
	Run       PayrollRun `json:"run"`
	Processed int64      `json:"processed"`
}
