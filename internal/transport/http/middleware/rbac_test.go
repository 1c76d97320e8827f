package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedback360/internal/domain/auth"
)

func requestWithPrincipal(role string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/employees", nil)
	ctx := context.WithValue(req.Context(), ctxKeyPrincipal, Principal{ID: "u1", Role: role})
	return req.WithContext(ctx)
}

func TestRequireRoleNoPrincipal(t *testing.T) {
	handler := RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a principal")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireRoleForbidden(t *testing.T) {
	handler := RequireRole(auth.RoleAdmin, auth.RoleManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for an excluded role")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithPrincipal(auth.RoleEmployee))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireRoleAllows(t *testing.T) {
	called := false
	handler := RequireRole(auth.RoleAdmin, auth.RoleManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithPrincipal(auth.RoleManager))

	if !called {
		t.Fatal("handler was not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
