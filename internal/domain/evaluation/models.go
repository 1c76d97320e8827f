package evaluation

import (
	"errors"

	"feedback360/internal/domain/employee"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

const (
	TypeSelf    = "self"
	TypePeer    = "peer"
	TypeManager = "manager"
)

var (
	ErrNotFound          = errors.New("evaluation not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidEvaluators = errors.New("one or more evaluators are not valid")
	ErrNoResponses       = errors.New("no responses found for this evaluation")
)

type Evaluation struct {
	ID         string             `json:"id"`
	Period     string             `json:"period"`
	Status     string             `json:"status"`
	Type       string             `json:"type"`
	EmployeeID string             `json:"employeeId"`
	Employee   *employee.Employee `json:"employee,omitempty"`
	Evaluators []string           `json:"evaluators,omitempty"`
}

// PendingEvaluation is the fan-out unit for NotifyPending.
type PendingEvaluation struct {
	ID         string
	Period     string
	EmployeeID string
	Evaluators []Evaluator
}

type Evaluator struct {
	UserID   string
	Username string
	Email    string
}
