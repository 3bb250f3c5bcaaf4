// Package payslip renders payroll settlements as downloadable PDF payslips.
package payslip

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type Line struct {
	Number           int
	SettlementDate   string
	BankTransfer     decimal.Decimal
	Cash             decimal.Decimal
	TotalDiscounts   decimal.Decimal
	TotalAdditionals decimal.Decimal
	WorkedDays       int
}

type Payslip struct {
	EmployeeName string
	PeriodYear   int
	PeriodMonth  int
	Lines        []Line
}

// Render writes the payslip PDF to w.
func Render(p Payslip, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", p.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %04d-%02d", p.PeriodYear, p.PeriodMonth))
	pdf.Ln(10)

	totalBank := decimal.Zero
	totalCash := decimal.Zero
	for _, line := range p.Lines {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Settlement %d (%s)", line.Number, line.SettlementDate))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Worked days: %d", line.WorkedDays))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Bank transfer: %s", line.BankTransfer.StringFixed(2)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Cash: %s", line.Cash.StringFixed(2)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Additionals: %s", line.TotalAdditionals.StringFixed(2)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Discounts: %s", line.TotalDiscounts.StringFixed(2)))
		pdf.Ln(10)

		totalBank = totalBank.Add(line.BankTransfer)
		totalCash = totalCash.Add(line.Cash)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total bank transfer: %s", totalBank.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total cash: %s", totalCash.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s", totalBank.Add(totalCash).StringFixed(2)))

	return pdf.Output(w)
}
