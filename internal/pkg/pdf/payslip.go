package pdf

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/money"
	"github.com/jung-kurt/gofpdf"
)

// Payslip renders a payslip as an A4 PDF document.
func Payslip(p payroll.Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", p.EmployeeName))
	pdf.Ln(7)
	if p.EmployeeCode != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Employee Code: %s", *p.EmployeeCode))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", p.PayPeriodStart.Format("2006-01-02"), p.PayPeriodEnd.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", p.Status))
	pdf.Ln(10)

	row(pdf, "Base Salary", money.Format(p.BaseSalary), true)
	section(pdf, "Earnings", p.Earnings)
	section(pdf, "Deductions", p.Deductions)
	section(pdf, "Benefits", p.Benefits)

	pdf.Ln(4)
	row(pdf, "Gross Pay", money.Format(p.GrossPay), true)
	row(pdf, "Total Deductions", money.Format(p.TotalDeductions), true)
	row(pdf, "Net Pay", money.Format(p.NetPay), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string, items payroll.LineItems) {
	if len(items) == 0 {
		return
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	for _, item := range items {
		row(pdf, item.Name, money.Format(item.Amount), false)
	}
}

func row(pdf *gofpdf.Fpdf, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 11)
	pdf.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, value, "", 1, "R", false, 0, "")
}
