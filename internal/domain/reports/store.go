package reports

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) EmployeeByID(ctx context.Context, id string) (EmployeeSummary, error) {
	var emp EmployeeSummary
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, position, department
    FROM employees
    WHERE id = $1
  `, id).Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Position, &emp.Department)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeSummary{}, ErrEmployeeNotFound
	}
	if err != nil {
		return EmployeeSummary{}, err
	}
	return emp, nil
}

func (s *Store) EmployeesByDepartment(ctx context.Context, department string) ([]EmployeeSummary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, position, department
    FROM employees
    WHERE department = $1
    ORDER BY created_at
  `, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []EmployeeSummary
	for rows.Next() {
		var emp EmployeeSummary
		if err := rows.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Position, &emp.Department); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) EvaluationsByEmployee(ctx context.Context, employeeID string) ([]EvaluationView, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, period, status, type
    FROM evaluations
    WHERE employee_id = $1
    ORDER BY created_at
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []EvaluationView
	for rows.Next() {
		var ev EvaluationView
		if err := rows.Scan(&ev.ID, &ev.Period, &ev.Status, &ev.Type); err != nil {
			return nil, err
		}
		evaluations = append(evaluations, ev)
	}
	return evaluations, rows.Err()
}

// ResponsesWithQuestions expands an evaluation's responses with the text
// of the question each one answers.
func (s *Store) ResponsesWithQuestions(ctx context.Context, evaluationID string) ([]ResponseView, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.id, r.answer, r.score, q.text
    FROM responses r
    JOIN questions q ON r.question_id = q.id
    WHERE r.evaluation_id = $1
    ORDER BY r.created_at
  `, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []ResponseView
	for rows.Next() {
		var resp ResponseView
		if err := rows.Scan(&resp.ID, &resp.Answer, &resp.Score, &resp.Question); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
