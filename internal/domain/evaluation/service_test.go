package evaluation

import (
	"math"
	"strings"
	"testing"
)

func intp(v int) *int { return &v }

func TestAverageScoreCountsMissingAsZero(t *testing.T) {
	scores := []*int{intp(5), nil, intp(3)}

	got := averageScore(scores)
	want := 8.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %.4f, got %.4f", want, got)
	}
}

func TestAverageScoreAllScored(t *testing.T) {
	scores := []*int{intp(4), intp(2)}
	if got := averageScore(scores); got != 3.0 {
		t.Fatalf("expected 3.0, got %f", got)
	}
}

func TestAverageScoreAllMissing(t *testing.T) {
	scores := []*int{nil, nil}
	if got := averageScore(scores); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}
}

func TestPendingNotificationMentionsEvaluatorAndPeriod(t *testing.T) {
	ev := PendingEvaluation{ID: "ev1", Period: "Q1-2024", EmployeeID: "emp1"}
	evaluator := Evaluator{UserID: "u1", Username: "jdoe", Email: "jdoe@example.com"}

	subject, body := pendingNotification(ev, evaluator)
	if !strings.Contains(subject, "Q1-2024") {
		t.Fatalf("subject missing period: %s", subject)
	}
	if !strings.Contains(body, "jdoe") || !strings.Contains(body, "emp1") {
		t.Fatalf("body missing evaluator or employee: %s", body)
	}
}
