package reportshandler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"feedback360/internal/domain/auth"
	"feedback360/internal/domain/reports"
	"feedback360/internal/transport/http/api"
	"feedback360/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager))
		r.Get("/employee/{employeeID}", h.handleEmployeeReport)
		r.Get("/employee/{employeeID}/pdf", h.handleEmployeeReportPDF)
		r.Get("/department/{department}", h.handleDepartmentReport)
	})
}

func (h *Handler) handleEmployeeReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.EmployeeReport(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, reports.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to generate employee report", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "", report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeReportPDF(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.EmployeeReport(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, reports.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to generate employee report", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	pdfBytes, err := reports.RenderEmployeeReportPDF(report)
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to render report pdf", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "employee-report-"+report.Employee.ID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func (h *Handler) handleDepartmentReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.DepartmentReport(r.Context(), chi.URLParam(r, "department"))
	if errors.Is(err, reports.ErrDepartmentNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "no employees found in the specified department", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to generate department report", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "", report, middleware.GetRequestID(r.Context()))
}
