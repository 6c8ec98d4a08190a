package payroll

import "errors"

var (
	ErrPayrollRunNotFound       = errors.New("payroll run not found")
	ErrPayrollRunClosed         = errors.New("payroll run is already completed or cancelled")
	ErrPayslipNotFound          = errors.New("payslip not found")
	ErrSalaryComponentNotFound  = errors.New("salary component not found")
	ErrSalaryComponentNameTaken = errors.New("salary component name already exists")
	ErrInvalidPeriod            = errors.New("period end must not be before period start")
	ErrEmployeeNotFound         = errors.New("employee not found")
	ErrEmployeeNotLinked        = errors.New("employee has no linked user account")
	ErrPayslipAccessDenied      = errors.New("payslip belongs to another employee")
)
