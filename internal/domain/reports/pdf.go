package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderEmployeeReportPDF renders the report as a single PDF document.
func RenderEmployeeReportPDF(report EmployeeReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Evaluation Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", report.Employee.FirstName, report.Employee.LastName))
	pdf.Ln(7)
	if report.Employee.Position != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Position: %s", report.Employee.Position))
		pdf.Ln(7)
	}
	if report.Employee.Department != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", report.Employee.Department))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	if len(report.Evaluations) == 0 {
		pdf.Cell(0, 8, "No evaluations recorded.")
	}

	for _, ev := range report.Evaluations {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("%s (%s, %s)", ev.Period, ev.Type, ev.Status))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		for _, resp := range ev.Responses {
			pdf.MultiCell(0, 6, fmt.Sprintf("Q: %s", resp.Question), "", "L", false)
			answer := fmt.Sprintf("A: %s", resp.Answer)
			if resp.Score != nil {
				answer = fmt.Sprintf("%s (score %d)", answer, *resp.Score)
			}
			pdf.MultiCell(0, 6, answer, "", "L", false)
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
