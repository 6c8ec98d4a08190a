package payroll

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/money"
)

// RenderText renders the plain-text payslip offered for download.
func RenderText(p Payslip) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PAYSLIP\n")
	fmt.Fprintf(&b, "Employee: %s\n", p.EmployeeName)
	if p.EmployeeCode != nil {
		fmt.Fprintf(&b, "Employee Code: %s\n", *p.EmployeeCode)
	}
	fmt.Fprintf(&b, "Pay Period: %s to %s\n", p.PayPeriodStart.Format("2006-01-02"), p.PayPeriodEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "Status: %s\n\n", p.Status)

	fmt.Fprintf(&b, "Base Salary: %s\n\n", money.Format(p.BaseSalary))

	fmt.Fprintf(&b, "EARNINGS\n")
	for _, e := range p.Earnings {
		fmt.Fprintf(&b, "  %s: %s\n", e.Name, money.Format(e.Amount))
	}
	fmt.Fprintf(&b, "\nDEDUCTIONS\n")
	for _, d := range p.Deductions {
		fmt.Fprintf(&b, "  %s: %s\n", d.Name, money.Format(d.Amount))
	}
	if len(p.Benefits) > 0 {
		fmt.Fprintf(&b, "\nBENEFITS\n")
		for _, bn := range p.Benefits {
			fmt.Fprintf(&b, "  %s: %s\n", bn.Name, money.Format(bn.Amount))
		}
	}

	fmt.Fprintf(&b, "\nGross Pay: %s\n", money.Format(p.GrossPay))
	fmt.Fprintf(&b, "Total Deductions: %s\n", money.Format(p.TotalDeductions))
	fmt.Fprintf(&b, "Net Pay: %s\n", money.Format(p.NetPay))
	return b.String()
}
