package response

import "context"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Create validates both references before writing: a response must point
// at exactly one existing question and one existing evaluation.
func (s *Service) Create(ctx context.Context, questionID, evaluationID, answer string, score *int) (Response, error) {
	ok, err := s.store.questionExists(ctx, questionID)
	if err != nil {
		return Response{}, err
	}
	if !ok {
		return Response{}, ErrQuestionNotFound
	}

	ok, err = s.store.evaluationExists(ctx, evaluationID)
	if err != nil {
		return Response{}, err
	}
	if !ok {
		return Response{}, ErrEvaluationNotFound
	}

	return s.store.Create(ctx, questionID, evaluationID, answer, score)
}

func (s *Service) ListByEvaluation(ctx context.Context, evaluationID string) ([]Response, error) {
	return s.store.ListByEvaluation(ctx, evaluationID)
}

func (s *Service) Update(ctx context.Context, id, answer string, score *int) (Response, error) {
	return s.store.Update(ctx, id, answer, score)
}
