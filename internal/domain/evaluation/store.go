package evaluation

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"feedback360/internal/domain/auth"
	"feedback360/internal/domain/employee"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) EmployeeExists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Create(ctx context.Context, period, status, typ, employeeID string) (Evaluation, error) {
	var ev Evaluation
	err := s.DB.QueryRow(ctx, `
    INSERT INTO evaluations (period, status, type, employee_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id, period, status, type, employee_id
  `, period, status, typ, employeeID).Scan(&ev.ID, &ev.Period, &ev.Status, &ev.Type, &ev.EmployeeID)
	return ev, err
}

func (s *Store) List(ctx context.Context) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ev.id, ev.period, ev.status, ev.type, ev.employee_id,
           e.id, e.first_name, e.last_name, e.position, e.department
    FROM evaluations ev
    JOIN employees e ON ev.employee_id = e.id
    ORDER BY ev.created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []Evaluation
	for rows.Next() {
		var ev Evaluation
		var emp employee.Employee
		if err := rows.Scan(&ev.ID, &ev.Period, &ev.Status, &ev.Type, &ev.EmployeeID,
			&emp.ID, &emp.FirstName, &emp.LastName, &emp.Position, &emp.Department); err != nil {
			return nil, err
		}
		ev.Employee = &emp
		evaluations = append(evaluations, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachEvaluators(ctx, evaluations); err != nil {
		return nil, err
	}
	return evaluations, nil
}

// attachEvaluators fills the evaluator id set for each evaluation in one
// query.
func (s *Store) attachEvaluators(ctx context.Context, evaluations []Evaluation) error {
	if len(evaluations) == 0 {
		return nil
	}

	ids := make([]string, 0, len(evaluations))
	index := map[string]int{}
	for i, ev := range evaluations {
		ids = append(ids, ev.ID)
		index[ev.ID] = i
	}

	rows, err := s.DB.Query(ctx, `
    SELECT evaluation_id, user_id
    FROM evaluation_evaluators
    WHERE evaluation_id = ANY($1)
  `, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var evaluationID, userID string
		if err := rows.Scan(&evaluationID, &userID); err != nil {
			return err
		}
		if i, ok := index[evaluationID]; ok {
			evaluations[i].Evaluators = append(evaluations[i].Evaluators, userID)
		}
	}
	return rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Evaluation, error) {
	var ev Evaluation
	var emp employee.Employee
	err := s.DB.QueryRow(ctx, `
    SELECT ev.id, ev.period, ev.status, ev.type, ev.employee_id,
           e.id, e.first_name, e.last_name, e.position, e.department
    FROM evaluations ev
    JOIN employees e ON ev.employee_id = e.id
    WHERE ev.id = $1
  `, id).Scan(&ev.ID, &ev.Period, &ev.Status, &ev.Type, &ev.EmployeeID,
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Position, &emp.Department)
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrNotFound
	}
	if err != nil {
		return Evaluation{}, err
	}
	ev.Employee = &emp

	evaluators, err := s.EvaluatorIDs(ctx, id)
	if err != nil {
		return Evaluation{}, err
	}
	ev.Evaluators = evaluators
	return ev, nil
}

func (s *Store) Update(ctx context.Context, id, period, status, typ string) (Evaluation, error) {
	var ev Evaluation
	err := s.DB.QueryRow(ctx, `
    UPDATE evaluations
    SET period = $2, status = $3, type = $4
    WHERE id = $1
    RETURNING id, period, status, type, employee_id
  `, id, period, status, typ).Scan(&ev.ID, &ev.Period, &ev.Status, &ev.Type, &ev.EmployeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrNotFound
	}
	if err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

func (s *Store) SetCompleted(ctx context.Context, id string) (Evaluation, error) {
	var ev Evaluation
	err := s.DB.QueryRow(ctx, `
    UPDATE evaluations
    SET status = $2
    WHERE id = $1
    RETURNING id, period, status, type, employee_id
  `, id, StatusCompleted).Scan(&ev.ID, &ev.Period, &ev.Status, &ev.Type, &ev.EmployeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrNotFound
	}
	if err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM evaluations WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountValidEvaluators counts how many of the given ids resolve to users
// whose role allows them to evaluate.
func (s *Store) CountValidEvaluators(ctx context.Context, userIDs []string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM users
    WHERE id = ANY($1) AND role = ANY($2)
  `, userIDs, []string{auth.RoleManager, auth.RoleEmployee}).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceEvaluators swaps the whole evaluator set in one transaction.
func (s *Store) ReplaceEvaluators(ctx context.Context, evaluationID string, userIDs []string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM evaluation_evaluators WHERE evaluation_id = $1", evaluationID); err != nil {
		return err
	}
	for _, userID := range userIDs {
		if _, err := tx.Exec(ctx, `
      INSERT INTO evaluation_evaluators (evaluation_id, user_id)
      VALUES ($1, $2)
    `, evaluationID, userID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) EvaluatorIDs(ctx context.Context, evaluationID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT user_id FROM evaluation_evaluators WHERE evaluation_id = $1", evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ResponseScores returns the score column for every response of the
// evaluation; nil entries are responses without a score.
func (s *Store) ResponseScores(ctx context.Context, evaluationID string) ([]*int, error) {
	rows, err := s.DB.Query(ctx, "SELECT score FROM responses WHERE evaluation_id = $1", evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []*int
	for rows.Next() {
		var score *int
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// ListPending returns every pending evaluation with its resolved
// evaluators.
func (s *Store) ListPending(ctx context.Context) ([]PendingEvaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, period, employee_id
    FROM evaluations
    WHERE status = $1
    ORDER BY created_at
  `, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []PendingEvaluation
	index := map[string]int{}
	for rows.Next() {
		var ev PendingEvaluation
		if err := rows.Scan(&ev.ID, &ev.Period, &ev.EmployeeID); err != nil {
			return nil, err
		}
		index[ev.ID] = len(pending)
		pending = append(pending, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(pending))
	for _, ev := range pending {
		ids = append(ids, ev.ID)
	}

	evRows, err := s.DB.Query(ctx, `
    SELECT ee.evaluation_id, u.id, u.username, u.email
    FROM evaluation_evaluators ee
    JOIN users u ON ee.user_id = u.id
    WHERE ee.evaluation_id = ANY($1)
  `, ids)
	if err != nil {
		return nil, err
	}
	defer evRows.Close()

	for evRows.Next() {
		var evaluationID string
		var evaluator Evaluator
		if err := evRows.Scan(&evaluationID, &evaluator.UserID, &evaluator.Username, &evaluator.Email); err != nil {
			return nil, err
		}
		if i, ok := index[evaluationID]; ok {
			pending[i].Evaluators = append(pending[i].Evaluators, evaluator)
		}
	}
	return pending, evRows.Err()
}
