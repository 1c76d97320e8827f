package response

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"feedback360/internal/domain/question"
)

var (
	ErrNotFound           = errors.New("response not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrEvaluationNotFound = errors.New("evaluation not found")
)

// EvaluationRef is the populated evaluation summary carried by a read
// response.
type EvaluationRef struct {
	ID     string `json:"id"`
	Period string `json:"period"`
	Status string `json:"status"`
	Type   string `json:"type"`
}

type Response struct {
	ID           string             `json:"id"`
	QuestionID   string             `json:"questionId"`
	EvaluationID string             `json:"evaluationId"`
	Answer       string             `json:"answer"`
	Score        *int               `json:"score,omitempty"`
	Question     *question.Question `json:"question,omitempty"`
	Evaluation   *EvaluationRef     `json:"evaluation,omitempty"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Create(ctx context.Context, questionID, evaluationID, answer string, score *int) (Response, error) {
	var resp Response
	err := s.DB.QueryRow(ctx, `
    INSERT INTO responses (question_id, evaluation_id, answer, score)
    VALUES ($1, $2, $3, $4)
    RETURNING id, question_id, evaluation_id, answer, score
  `, questionID, evaluationID, answer, score).Scan(&resp.ID, &resp.QuestionID, &resp.EvaluationID, &resp.Answer, &resp.Score)
	return resp, err
}

// ListByEvaluation populates the referenced question and evaluation
// summary for each response.
func (s *Store) ListByEvaluation(ctx context.Context, evaluationID string) ([]Response, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.id, r.question_id, r.evaluation_id, r.answer, r.score,
           q.id, q.text, q.category,
           ev.id, ev.period, ev.status, ev.type
    FROM responses r
    JOIN questions q ON r.question_id = q.id
    JOIN evaluations ev ON r.evaluation_id = ev.id
    WHERE r.evaluation_id = $1
    ORDER BY r.created_at
  `, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []Response
	for rows.Next() {
		var resp Response
		var q question.Question
		var ev EvaluationRef
		if err := rows.Scan(&resp.ID, &resp.QuestionID, &resp.EvaluationID, &resp.Answer, &resp.Score,
			&q.ID, &q.Text, &q.Category,
			&ev.ID, &ev.Period, &ev.Status, &ev.Type); err != nil {
			return nil, err
		}
		resp.Question = &q
		resp.Evaluation = &ev
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (s *Store) Update(ctx context.Context, id, answer string, score *int) (Response, error) {
	var resp Response
	err := s.DB.QueryRow(ctx, `
    UPDATE responses
    SET answer = $2, score = $3
    WHERE id = $1
    RETURNING id, question_id, evaluation_id, answer, score
  `, id, answer, score).Scan(&resp.ID, &resp.QuestionID, &resp.EvaluationID, &resp.Answer, &resp.Score)
	if errors.Is(err, pgx.ErrNoRows) {
		return Response{}, ErrNotFound
	}
	if err != nil {
		return Response{}, err
	}
	return resp, nil
}

func (s *Store) questionExists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM questions WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) evaluationExists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM evaluations WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
