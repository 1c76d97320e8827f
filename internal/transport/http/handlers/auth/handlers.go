package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"feedback360/internal/domain/auth"
	"feedback360/internal/transport/http/api"
	"feedback360/internal/transport/http/middleware"
	"feedback360/internal/transport/http/shared"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Role     string `json:"role" validate:"required,oneof=admin manager employee"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.Register(r.Context(), payload.Username, payload.Email, payload.Password, payload.Role)
	if errors.Is(err, auth.ErrInvalidRole) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "role must be one of: admin manager employee", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, auth.ErrEmailTaken) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "user already exists", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to register user", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, "user registered successfully", map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	token, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusBadRequest, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to log in", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, "login successful", map[string]string{"token": token}, middleware.GetRequestID(r.Context()))
}
