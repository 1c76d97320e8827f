package evaluationhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"feedback360/internal/domain/auth"
	"feedback360/internal/domain/evaluation"
	"feedback360/internal/transport/http/api"
	"feedback360/internal/transport/http/middleware"
	"feedback360/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
}

func NewHandler(service *evaluation.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager))
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/notifications/pending", h.handleNotifyPending)
		r.Get("/{evaluationID}", h.handleGet)
		r.Put("/{evaluationID}", h.handleUpdate)
		r.Post("/{evaluationID}/submit", h.handleSubmit)
		r.Get("/{evaluationID}/calculate-score", h.handleCalculateScore)
		r.Put("/{evaluationID}/assign-evaluators", h.handleAssignEvaluators)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Period     string `json:"period" validate:"required"`
		Status     string `json:"status" validate:"omitempty,oneof=pending completed"`
		Type       string `json:"type" validate:"required,oneof=self peer manager"`
		EmployeeID string `json:"employeeId" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	ev, err := h.Service.Create(r.Context(), evaluation.CreateParams{
		Period:     payload.Period,
		Status:     payload.Status,
		Type:       payload.Type,
		EmployeeID: payload.EmployeeID,
	})
	if errors.Is(err, evaluation.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to create evaluation", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, "evaluation created successfully", ev, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	evaluations, err := h.Service.List(r.Context())
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to list evaluations", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "", evaluations, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ev, err := h.Service.Get(r.Context(), chi.URLParam(r, "evaluationID"))
	if errors.Is(err, evaluation.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to fetch evaluation", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "", ev, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Period string `json:"period" validate:"required"`
		Status string `json:"status" validate:"required,oneof=pending completed"`
		Type   string `json:"type" validate:"required,oneof=self peer manager"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	ev, err := h.Service.Update(r.Context(), chi.URLParam(r, "evaluationID"), payload.Period, payload.Status, payload.Type)
	if errors.Is(err, evaluation.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to update evaluation", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "evaluation updated successfully", ev, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ev, err := h.Service.Submit(r.Context(), chi.URLParam(r, "evaluationID"))
	if errors.Is(err, evaluation.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to submit evaluation", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "evaluation submitted successfully", ev, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCalculateScore(w http.ResponseWriter, r *http.Request) {
	evaluationID := chi.URLParam(r, "evaluationID")
	average, err := h.Service.AverageScore(r.Context(), evaluationID)
	if errors.Is(err, evaluation.ErrNoResponses) {
		api.Fail(w, http.StatusNotFound, "not_found", "no responses found for this evaluation", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to calculate score", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "", map[string]any{
		"evaluationId": evaluationID,
		"averageScore": average,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAssignEvaluators(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Evaluators []string `json:"evaluators" validate:"required,min=1"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	ev, err := h.Service.AssignEvaluators(r.Context(), chi.URLParam(r, "evaluationID"), payload.Evaluators)
	if errors.Is(err, evaluation.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, evaluation.ErrInvalidEvaluators) {
		api.Fail(w, http.StatusBadRequest, "invalid_evaluators", "one or more evaluators are not valid", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to assign evaluators", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "evaluators assigned successfully", ev, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleNotifyPending(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.NotifyPending(r.Context())
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to notify pending evaluations", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	message := fmt.Sprintf("notified evaluators of %d pending evaluations", count)
	if count == 0 {
		message = "no pending evaluations"
	}
	api.Success(w, message, map[string]int{"pendingEvaluations": count}, middleware.GetRequestID(r.Context()))
}
