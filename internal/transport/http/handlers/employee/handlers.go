package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"feedback360/internal/domain/auth"
	"feedback360/internal/domain/employee"
	"feedback360/internal/transport/http/api"
	"feedback360/internal/transport/http/middleware"
	"feedback360/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
}

func NewHandler(store *employee.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)).Put("/{employeeID}", h.handleUpdate)
	})
}

type employeePayload struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Position   string `json:"position"`
	Department string `json:"department"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Store.Create(r.Context(), payload.FirstName, payload.LastName, payload.Position, payload.Department)
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to create employee", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, "employee created successfully", emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.List(r.Context())
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to list employees", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "", employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to fetch employee", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "", emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := shared.Validate(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", shared.ValidationMessage(err), middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Store.Update(r.Context(), chi.URLParam(r, "employeeID"), payload.FirstName, payload.LastName, payload.Position, payload.Department)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to update employee", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "employee updated successfully", emp, middleware.GetRequestID(r.Context()))
}
