package responsehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"feedback360/internal/domain/auth"
	"feedback360/internal/domain/response"
	"feedback360/internal/transport/http/api"
	"feedback360/internal/transport/http/middleware"
	"feedback360/internal/transport/http/shared"
)

type Handler struct {
	Service *response.Service
}

func NewHandler(service *response.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/responses", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleEmployee)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)).Get("/evaluation/{evaluationID}", h.handleListByEvaluation)
		r.With(middleware.RequireRole(auth.RoleEmployee, auth.RoleManager)).Put("/{responseID}", h.handleUpdate)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		QuestionID   string `json:"questionId" validate:"required"`
		EvaluationID string `json:"evaluationId" validate:"required"`
		Answer       string `json:"answer" validate:"required"`
		Score        *int   `json:"score" validate:"omitempty,min=1,max=5"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	resp, err := h.Service.Create(r.Context(), payload.QuestionID, payload.EvaluationID, payload.Answer, payload.Score)
	if errors.Is(err, response.ErrQuestionNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "question not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, response.ErrEvaluationNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to create response", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, "response created successfully", resp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByEvaluation(w http.ResponseWriter, r *http.Request) {
	responses, err := h.Service.ListByEvaluation(r.Context(), chi.URLParam(r, "evaluationID"))
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to list responses", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "", responses, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Answer string `json:"answer" validate:"required"`
		Score  *int   `json:"score" validate:"omitempty,min=1,max=5"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	resp, err := h.Service.Update(r.Context(), chi.URLParam(r, "responseID"), payload.Answer, payload.Score)
	if errors.Is(err, response.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "response not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to update response", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "response updated successfully", resp, middleware.GetRequestID(r.Context()))
}
