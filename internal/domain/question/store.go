package question

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("question not found")

type Question struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Create(ctx context.Context, text, category string) (Question, error) {
	var q Question
	err := s.DB.QueryRow(ctx, `
    INSERT INTO questions (text, category)
    VALUES ($1, $2)
    RETURNING id, text, category
  `, text, category).Scan(&q.ID, &q.Text, &q.Category)
	return q, err
}

func (s *Store) List(ctx context.Context) ([]Question, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, text, category
    FROM questions
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Category); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) Update(ctx context.Context, id, text, category string) (Question, error) {
	var q Question
	err := s.DB.QueryRow(ctx, `
    UPDATE questions
    SET text = $2, category = $3
    WHERE id = $1
    RETURNING id, text, category
  `, id, text, category).Scan(&q.ID, &q.Text, &q.Category)
	if errors.Is(err, pgx.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	if err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM questions WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
