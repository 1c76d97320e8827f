package reports

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDepartmentNotFound = errors.New("no employees found in the specified department")
)

type EmployeeSummary struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
}

type ResponseView struct {
	ID       string `json:"id"`
	Answer   string `json:"answer"`
	Score    *int   `json:"score,omitempty"`
	Question string `json:"question"`
}

type EvaluationView struct {
	ID        string         `json:"id"`
	Period    string         `json:"period"`
	Status    string         `json:"status"`
	Type      string         `json:"type"`
	Responses []ResponseView `json:"responses"`
}

type EmployeeReport struct {
	Employee    EmployeeSummary  `json:"employee"`
	Evaluations []EvaluationView `json:"evaluations"`
}

type DepartmentGroup struct {
	Employee    EmployeeSummary  `json:"employee"`
	Evaluations []EvaluationView `json:"evaluations"`
}

type DepartmentReport struct {
	Department  string            `json:"department"`
	Evaluations []DepartmentGroup `json:"evaluations"`
}
