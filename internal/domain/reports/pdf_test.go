package reports

import (
	"bytes"
	"testing"
)

func TestRenderEmployeeReportPDF(t *testing.T) {
	score := 4
	report := EmployeeReport{
		Employee: EmployeeSummary{
			ID:         "emp1",
			FirstName:  "Ada",
			LastName:   "Lovelace",
			Position:   "Engineer",
			Department: "Engineering",
		},
		Evaluations: []EvaluationView{
			{
				ID:     "ev1",
				Period: "Q1-2024",
				Status: "completed",
				Type:   "peer",
				Responses: []ResponseView{
					{ID: "r1", Answer: "Strong collaborator", Score: &score, Question: "How well does the employee collaborate?"},
					{ID: "r2", Answer: "Could delegate more", Question: "What should the employee improve?"},
				},
			},
		},
	}

	data, err := RenderEmployeeReportPDF(report)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes, got %q", data[:8])
	}
}

func TestRenderEmployeeReportPDFEmpty(t *testing.T) {
	report := EmployeeReport{
		Employee: EmployeeSummary{ID: "emp1", FirstName: "Ada", LastName: "Lovelace"},
	}

	data, err := RenderEmployeeReportPDF(report)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF")
	}
}
