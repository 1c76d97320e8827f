package evaluation

import (
	"context"
	"fmt"
	"log/slog"
)

// Notifier delivers a single notification to one recipient. Delivery is
// an external collaborator; the service only decides the fan-out set.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

type Service struct {
	store    *Store
	notifier Notifier
}

func NewService(store *Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

type CreateParams struct {
	Period     string
	Status     string
	Type       string
	EmployeeID string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Evaluation, error) {
	exists, err := s.store.EmployeeExists(ctx, params.EmployeeID)
	if err != nil {
		return Evaluation{}, err
	}
	if !exists {
		return Evaluation{}, ErrEmployeeNotFound
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}
	return s.store.Create(ctx, params.Period, status, params.Type, params.EmployeeID)
}

func (s *Service) List(ctx context.Context) ([]Evaluation, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Evaluation, error) {
	return s.store.Get(ctx, id)
}

// Update writes period/status/type directly; only Submit is the state
// machine transition.
func (s *Service) Update(ctx context.Context, id, period, status, typ string) (Evaluation, error) {
	return s.store.Update(ctx, id, period, status, typ)
}

// Submit marks the evaluation completed. Re-submitting a completed
// evaluation is not an error.
func (s *Service) Submit(ctx context.Context, id string) (Evaluation, error) {
	return s.store.SetCompleted(ctx, id)
}

// AssignEvaluators replaces the evaluator set, all-or-nothing: if any id
// does not resolve to a manager or employee user, nothing is written.
func (s *Service) AssignEvaluators(ctx context.Context, id string, userIDs []string) (Evaluation, error) {
	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return Evaluation{}, err
	}
	if !exists {
		return Evaluation{}, ErrNotFound
	}

	valid, err := s.store.CountValidEvaluators(ctx, userIDs)
	if err != nil {
		return Evaluation{}, err
	}
	if valid != len(userIDs) {
		return Evaluation{}, ErrInvalidEvaluators
	}

	if err := s.store.ReplaceEvaluators(ctx, id, userIDs); err != nil {
		return Evaluation{}, err
	}
	return s.store.Get(ctx, id)
}

// AverageScore sums score-or-zero across every response of the evaluation
// and divides by the total response count. Unscored responses therefore
// drag the average down rather than being excluded.
func (s *Service) AverageScore(ctx context.Context, id string) (float64, error) {
	scores, err := s.store.ResponseScores(ctx, id)
	if err != nil {
		return 0, err
	}
	if len(scores) == 0 {
		return 0, ErrNoResponses
	}
	return averageScore(scores), nil
}

func averageScore(scores []*int) float64 {
	total := 0
	for _, score := range scores {
		if score != nil {
			total += *score
		}
	}
	return float64(total) / float64(len(scores))
}

// NotifyPending fans out one notification per (evaluation, evaluator)
// pair and returns the number of pending evaluations processed.
func (s *Service) NotifyPending(ctx context.Context) (int, error) {
	pending, err := s.store.ListPending(ctx)
	if err != nil {
		return 0, err
	}

	for _, ev := range pending {
		for _, evaluator := range ev.Evaluators {
			subject, body := pendingNotification(ev, evaluator)
			slog.Info("pending evaluation notification",
				"evaluation", ev.ID, "evaluator", evaluator.Username)
			if s.notifier == nil {
				continue
			}
			if err := s.notifier.Notify(ctx, evaluator.Email, subject, body); err != nil {
				slog.Warn("pending notification delivery failed",
					"evaluation", ev.ID, "evaluator", evaluator.UserID, "err", err)
			}
		}
	}
	return len(pending), nil
}

func pendingNotification(ev PendingEvaluation, evaluator Evaluator) (string, string) {
	subject := fmt.Sprintf("Pending evaluation for period %s", ev.Period)
	body := fmt.Sprintf("%s, you have a pending evaluation for employee %s (period %s).",
		evaluator.Username, ev.EmployeeID, ev.Period)
	return subject, body
}
