package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals of a single payslip.
type Totals struct {
	Gross      decimal.Decimal
	Deductions decimal.Decimal
	Net        decimal.Decimal
}

// ComputeTotals returns gross = base + earnings, the summed deductions and
// net = gross - deductions. Benefits are informational and not paid out.
func ComputeTotals(base decimal.Decimal, earnings, deductions LineItems) Totals {
	gross := base.Add(earnings.Total())
	totalDeductions := deductions.Total()
	return Totals{
		Gross:      gross.Round(2),
		Deductions: totalDeductions.Round(2),
		Net:        gross.Sub(totalDeductions).Round(2),
	}
}

// ApplyComponents turns the active salary components into payslip line
// items for a base salary. Variable components without a value are skipped.
func ApplyComponents(base decimal.Decimal, components []SalaryComponent) (earnings, deductions, benefits LineItems) {
	earnings, deductions, benefits = LineItems{}, LineItems{}, LineItems{}
	for _, c := range components {
		if !c.IsActive {
			continue
		}

		var amount decimal.Decimal
		switch c.CalculationType {
		case CalculationPercentage:
			if c.Percentage == nil {
				continue
			}
			amount = base.Mul(*c.Percentage).Div(hundred).Round(2)
		default:
			if c.Value == nil {
				continue
			}
			amount = c.Value.Round(2)
		}

		item := LineItem{Name: c.Name, Amount: amount}
		switch c.Type {
		case ComponentTypeEarning:
			earnings = append(earnings, item)
		case ComponentTypeDeduction:
			deductions = append(deductions, item)
		case ComponentTypeBenefit:
			benefits = append(benefits, item)
		}
	}
	return earnings, deductions, benefits
}

// PaidDateFor returns today's date for a paid payslip and nil otherwise.
func PaidDateFor(status PayslipStatus, now time.Time) *time.Time {
	if status != PayslipStatusPaid {
		return nil
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return &today
}
