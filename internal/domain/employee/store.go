package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Employee struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Create(ctx context.Context, firstName, lastName, position, department string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, position, department)
    VALUES ($1, $2, $3, $4)
    RETURNING id, first_name, last_name, position, department
  `, firstName, lastName, position, department).Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Position, &emp.Department)
	return emp, err
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, position, department
    FROM employees
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Position, &emp.Department); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, position, department
    FROM employees
    WHERE id = $1
  `, id).Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Position, &emp.Department)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) Update(ctx context.Context, id, firstName, lastName, position, department string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, position = $4, department = $5
    WHERE id = $1
    RETURNING id, first_name, last_name, position, department
  `, id, firstName, lastName, position, department).Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Position, &emp.Department)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}
