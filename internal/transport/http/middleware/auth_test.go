package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedback360/internal/domain/auth"
)

type stubPrincipalStore struct {
	users     map[string]auth.User
	lookupErr error
}

func (s *stubPrincipalStore) UserByID(_ context.Context, id string) (auth.User, error) {
	if s.lookupErr != nil {
		return auth.User{}, s.lookupErr
	}
	user, ok := s.users[id]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

func protectedHandler(t *testing.T, wantPrincipal bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipal(r.Context())
		if ok != wantPrincipal {
			t.Errorf("GetPrincipal ok = %v, want %v", ok, wantPrincipal)
		}
		if wantPrincipal && principal.ID == "" {
			t.Error("principal attached without an id")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingHeader(t *testing.T) {
	store := &stubPrincipalStore{users: map[string]auth.User{}}
	handler := Authenticate("secret", store)(protectedHandler(t, false))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	store := &stubPrincipalStore{users: map[string]auth.User{}}
	handler := Authenticate("secret", store)(protectedHandler(t, false))

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	store := &stubPrincipalStore{users: map[string]auth.User{
		"u1": {ID: "u1", Username: "alice", Email: "alice@example.com", Role: auth.RoleAdmin},
	}}
	token, err := auth.GenerateToken("secret", auth.Claims{UserID: "u1", Role: auth.RoleAdmin}, auth.TokenTTL)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	handler := Authenticate("secret", store)(protectedHandler(t, true))
	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthenticateRejectsVanishedUser(t *testing.T) {
	store := &stubPrincipalStore{users: map[string]auth.User{}}
	token, err := auth.GenerateToken("secret", auth.Claims{UserID: "gone", Role: auth.RoleAdmin}, auth.TokenTTL)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	handler := Authenticate("secret", store)(protectedHandler(t, false))
	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateStoreFailureIsNotUnauthorized(t *testing.T) {
	store := &stubPrincipalStore{lookupErr: errors.New("pool exhausted")}
	token, err := auth.GenerateToken("secret", auth.Claims{UserID: "u1", Role: auth.RoleAdmin}, auth.TokenTTL)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	handler := Authenticate("secret", store)(protectedHandler(t, false))
	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
