package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"feedback360/internal/app/server"
	"feedback360/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		Addr:              ":0",
		Environment:       "test",
		DatabaseURL:       dbURL,
		JWTSecret:         "test-secret",
		MigrationsDir:     "../../../../migrations",
		RunMigrations:     true,
		RunSeed:           true,
		SeedAdminUsername: "admin",
		SeedAdminEmail:    "admin@test.local",
		SeedAdminPassword: "ChangeMe123!",
		EmailFrom:         "no-reply@test.local",
	}
}

func TestEvaluationJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	// Directory data.
	employeeID := createJSONID(t, client, ts.URL+"/api/v1/employees", adminToken, map[string]any{
		"firstName":  "Journey",
		"lastName":   "Tester",
		"position":   "Engineer",
		"department": "Engineering-" + suffix,
	})
	questionID := createJSONID(t, client, ts.URL+"/api/v1/questions", adminToken, map[string]any{
		"text":     "How well does this person collaborate?",
		"category": "teamwork",
	})
	evaluationID := createJSONID(t, client, ts.URL+"/api/v1/evaluations", adminToken, map[string]any{
		"period":     "2026-Q3",
		"type":       "peer",
		"employeeId": employeeID,
	})

	// Evaluator users: one manager, one plain employee.
	managerID := register(t, client, ts.URL, "manager-"+suffix, "manager-"+suffix+"@example.com", "Manager123!", "manager")
	raterID := register(t, client, ts.URL, "rater-"+suffix, "rater-"+suffix+"@example.com", "Rater123!", "employee")
	raterToken := login(t, client, ts.URL, "rater-"+suffix+"@example.com", "Rater123!")

	// Assigning an unknown user id must leave the set untouched.
	putJSONStatus(t, client, ts.URL+"/api/v1/evaluations/"+evaluationID+"/assign-evaluators", adminToken, map[string]any{
		"evaluators": []string{managerID, "00000000-0000-0000-0000-000000000000"},
	}, http.StatusBadRequest)

	env := putJSON(t, client, ts.URL+"/api/v1/evaluations/"+evaluationID+"/assign-evaluators", adminToken, map[string]any{
		"evaluators": []string{managerID, raterID},
	})
	var assigned struct {
		Evaluators []string `json:"evaluators"`
	}
	if err := json.Unmarshal(env.Data, &assigned); err != nil {
		t.Fatalf("failed to decode assignment response: %v", err)
	}
	if len(assigned.Evaluators) != 2 {
		t.Fatalf("expected 2 evaluators, got %d", len(assigned.Evaluators))
	}

	// The list view carries the evaluator set too.
	listEnv := getJSON(t, client, ts.URL+"/api/v1/evaluations", adminToken)
	var evaluations []struct {
		ID         string   `json:"id"`
		Evaluators []string `json:"evaluators"`
	}
	if err := json.Unmarshal(listEnv.Data, &evaluations); err != nil {
		t.Fatalf("failed to decode evaluation list: %v", err)
	}
	found := false
	for _, ev := range evaluations {
		if ev.ID == evaluationID {
			found = true
			if len(ev.Evaluators) != 2 {
				t.Fatalf("expected 2 evaluators in list view, got %d", len(ev.Evaluators))
			}
		}
	}
	if !found {
		t.Fatal("expected the evaluation in the list view")
	}

	// Two responses: one scored 5, one unscored. Unscored counts as zero,
	// so the average is 2.5.
	postJSON(t, client, ts.URL+"/api/v1/responses", raterToken, map[string]any{
		"questionId":   questionID,
		"evaluationId": evaluationID,
		"answer":       "Works very well with the team.",
		"score":        5,
	})
	postJSON(t, client, ts.URL+"/api/v1/responses", raterToken, map[string]any{
		"questionId":   questionID,
		"evaluationId": evaluationID,
		"answer":       "No score on this one.",
	})

	// Responses read back with score and populated question text.
	respEnv := getJSON(t, client, ts.URL+"/api/v1/responses/evaluation/"+evaluationID, adminToken)
	var responses []struct {
		Answer   string `json:"answer"`
		Score    *int   `json:"score"`
		Question struct {
			Text string `json:"text"`
		} `json:"question"`
	}
	if err := json.Unmarshal(respEnv.Data, &responses); err != nil {
		t.Fatalf("failed to decode response list: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	scoredSeen := false
	for _, resp := range responses {
		if resp.Question.Text != "How well does this person collaborate?" {
			t.Fatalf("expected populated question text, got %q", resp.Question.Text)
		}
		if resp.Score != nil {
			if *resp.Score != 5 {
				t.Fatalf("expected score 5, got %d", *resp.Score)
			}
			scoredSeen = true
		}
	}
	if !scoredSeen {
		t.Fatal("expected one scored response")
	}

	scoreEnv := getJSON(t, client, ts.URL+"/api/v1/evaluations/"+evaluationID+"/calculate-score", adminToken)
	var score struct {
		EvaluationID string  `json:"evaluationId"`
		AverageScore float64 `json:"averageScore"`
	}
	if err := json.Unmarshal(scoreEnv.Data, &score); err != nil {
		t.Fatalf("failed to decode score response: %v", err)
	}
	if score.AverageScore != 2.5 {
		t.Fatalf("expected average score 2.5, got %v", score.AverageScore)
	}

	// Pending notifications cover the evaluation before submission.
	notifyEnv := getJSON(t, client, ts.URL+"/api/v1/evaluations/notifications/pending", adminToken)
	var notify struct {
		PendingEvaluations int `json:"pendingEvaluations"`
	}
	if err := json.Unmarshal(notifyEnv.Data, &notify); err != nil {
		t.Fatalf("failed to decode notification response: %v", err)
	}
	if notify.PendingEvaluations < 1 {
		t.Fatalf("expected at least one pending evaluation, got %d", notify.PendingEvaluations)
	}

	// Submit completes the evaluation; a second submit is a no-op.
	submitEnv := postJSON(t, client, ts.URL+"/api/v1/evaluations/"+evaluationID+"/submit", adminToken, nil)
	var submitted struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(submitEnv.Data, &submitted); err != nil {
		t.Fatalf("failed to decode submit response: %v", err)
	}
	if submitted.Status != "completed" {
		t.Fatalf("expected status completed, got %s", submitted.Status)
	}
	postJSON(t, client, ts.URL+"/api/v1/evaluations/"+evaluationID+"/submit", adminToken, nil)

	// Reports.
	reportEnv := getJSON(t, client, ts.URL+"/api/v1/reports/employee/"+employeeID, adminToken)
	var report struct {
		Evaluations []struct {
			Responses []any `json:"responses"`
		} `json:"evaluations"`
	}
	if err := json.Unmarshal(reportEnv.Data, &report); err != nil {
		t.Fatalf("failed to decode employee report: %v", err)
	}
	if len(report.Evaluations) == 0 || len(report.Evaluations[0].Responses) != 2 {
		t.Fatalf("expected one evaluation with two responses, got %+v", report)
	}

	deptEnv := getJSON(t, client, ts.URL+"/api/v1/reports/department/Engineering-"+suffix, adminToken)
	var dept struct {
		Department  string `json:"department"`
		Evaluations []any  `json:"evaluations"`
	}
	if err := json.Unmarshal(deptEnv.Data, &dept); err != nil {
		t.Fatalf("failed to decode department report: %v", err)
	}
	if len(dept.Evaluations) != 1 {
		t.Fatalf("expected one department group, got %d", len(dept.Evaluations))
	}

	pdf := getRaw(t, client, ts.URL+"/api/v1/reports/employee/"+employeeID+"/pdf", adminToken)
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected a pdf document")
	}

	// Unknown subjects are 404s, not empty reports.
	getRawStatus(t, client, ts.URL+"/api/v1/reports/employee/00000000-0000-0000-0000-000000000000", adminToken, http.StatusNotFound)
	getRawStatus(t, client, ts.URL+"/api/v1/reports/department/NoSuchDept-"+suffix, adminToken, http.StatusNotFound)
}

func TestEmployeeRoleCannotManageDirectory(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	register(t, client, ts.URL, "worker-"+suffix, "worker-"+suffix+"@example.com", "Worker123!", "employee")
	token := login(t, client, ts.URL, "worker-"+suffix+"@example.com", "Worker123!")

	postJSONStatus(t, client, ts.URL+"/api/v1/employees", token, map[string]any{
		"firstName": "Nope",
		"lastName":  "Forbidden",
	}, http.StatusForbidden)

	getRawStatus(t, client, ts.URL+"/api/v1/employees", token, http.StatusForbidden)
	getRawStatus(t, client, ts.URL+"/api/v1/employees", "", http.StatusUnauthorized)
}

func register(t *testing.T, client *http.Client, baseURL, username, email, password, role string) string {
	t.Helper()
	env := postJSON(t, client, baseURL+"/api/v1/auth/register", "", map[string]any{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	})
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected user id")
	}
	return id
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	env := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createJSONID(t *testing.T, client *http.Client, url, token string, body any) string {
	t.Helper()
	env := postJSON(t, client, url, token, body)
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatalf("expected id in response from %s", url)
	}
	return id
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, want int) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if want == 0 && resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	if want != 0 && resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPost, url, token, body, 0)
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPost, url, token, body, want)
}

func putJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPut, url, token, body, 0)
}

func putJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPut, url, token, body, want)
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodGet, url, token, nil, 0)
}

func getRaw(t *testing.T, client *http.Client, url, token string) []byte {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	return raw
}

func getRawStatus(t *testing.T, client *http.Client, url, token string, want int) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}
