package reports

import "context"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// EmployeeReport composes the employee summary with every evaluation and
// its question-expanded responses.
func (s *Service) EmployeeReport(ctx context.Context, employeeID string) (EmployeeReport, error) {
	emp, err := s.store.EmployeeByID(ctx, employeeID)
	if err != nil {
		return EmployeeReport{}, err
	}

	evaluations, err := s.expandEvaluations(ctx, employeeID)
	if err != nil {
		return EmployeeReport{}, err
	}

	return EmployeeReport{Employee: emp, Evaluations: evaluations}, nil
}

// DepartmentReport runs the same expansion once per matching employee,
// in the store's retrieval order.
func (s *Service) DepartmentReport(ctx context.Context, department string) (DepartmentReport, error) {
	employees, err := s.store.EmployeesByDepartment(ctx, department)
	if err != nil {
		return DepartmentReport{}, err
	}
	if len(employees) == 0 {
		return DepartmentReport{}, ErrDepartmentNotFound
	}

	report := DepartmentReport{Department: department}
	for _, emp := range employees {
		evaluations, err := s.expandEvaluations(ctx, emp.ID)
		if err != nil {
			return DepartmentReport{}, err
		}
		report.Evaluations = append(report.Evaluations, DepartmentGroup{
			Employee:    emp,
			Evaluations: evaluations,
		})
	}
	return report, nil
}

func (s *Service) expandEvaluations(ctx context.Context, employeeID string) ([]EvaluationView, error) {
	evaluations, err := s.store.EvaluationsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	for i := range evaluations {
		responses, err := s.store.ResponsesWithQuestions(ctx, evaluations[i].ID)
		if err != nil {
			return nil, err
		}
		evaluations[i].Responses = responses
	}
	return evaluations, nil
}
