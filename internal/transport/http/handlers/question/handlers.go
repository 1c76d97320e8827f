package questionhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"feedback360/internal/domain/auth"
	"feedback360/internal/domain/question"
	"feedback360/internal/transport/http/api"
	"feedback360/internal/transport/http/middleware"
	"feedback360/internal/transport/http/shared"
)

type Handler struct {
	Store *question.Store
}

func NewHandler(store *question.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/questions", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{questionID}", h.handleUpdate)
	})
}

type questionPayload struct {
	Text     string `json:"text" validate:"required"`
	Category string `json:"category"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload questionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	q, err := h.Store.Create(r.Context(), payload.Text, payload.Category)
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to create question", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, "question created successfully", q, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	questions, err := h.Store.List(r.Context())
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to list questions", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "", questions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload questionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	q, err := h.Store.Update(r.Context(), chi.URLParam(r, "questionID"), payload.Text, payload.Category)
	if errors.Is(err, question.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "question not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to update question", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "question updated successfully", q, middleware.GetRequestID(r.Context()))
}
